// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + periodo  │  fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: movimientos / entradas / salidas / ajustes ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS ACTIVAS: Tipo | Producto | SKU | Stock | Umbral    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTOS POR PRODUCTO: Producto | SKU | Entr. | Sal. ...│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	rules "github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ inventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
	author  string
}

// NewMarotoReportGenerator construye el generador. Los números se formatean en español (1.234).
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.Spanish), author: author}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(_ context.Context, report *inventory.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(report.Summary.MovementTotals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow(fmt.Sprintf("ALERTAS ACTIVAS (%s)", g.number(len(report.ActiveAlerts)))))
	if len(report.ActiveAlerts) == 0 {
		m.AddRows(emptyRow("Sin alertas activas."))
	} else {
		m.AddRows(alertHeaderRow())
		m.AddRows(g.alertRows(report.ActiveAlerts)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("MOVIMIENTOS POR PRODUCTO"))
	if len(report.Summary.ByProduct) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el periodo."))
	} else {
		m.AddRows(movementHeaderRow())
		m.AddRows(g.movementRows(report.Summary.ByProduct)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y periodo (izq), fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(report *inventory.InventoryReport) core.Row {
	scope := "Todos los productos"
	if report.ProductID != "" {
		scope = "Producto " + report.ProductID
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(scope+"   |   Periodo: "+period(report.From, report.To), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) totalsRow(t rules.MovementTotals) core.Row {
	cell := func(label string, v int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(g.number(v), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Movimientos", t.TotalMovements),
		cell("Entradas", t.StockIn),
		cell("Salidas", t.StockOut),
		cell("Ajustes (neto)", t.Adjustments),
		cell("Reservado", t.Reserved),
		cell("Liberado", t.Released),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func alertHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Tipo", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Stock", 1, align.Right),
		headerCell("Umbral", 1, align.Right),
		headerCell("Desde", 2, align.Right),
	)
}

func (g *MarotoReportGenerator) alertRows(alerts []*entity.StockAlertView) []core.Row {
	rows := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		threshold := "—"
		if a.Threshold != nil {
			threshold = g.number(*a.Threshold)
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(alertLabel(a.Type), props.Text{Size: 8, Top: 1, Left: 1, Color: colorAlert, Style: fontstyle.Bold})),
			col.New(4).Add(text.New(nonEmpty(a.Product.Name, a.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(a.Product.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.number(a.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(threshold, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(a.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func movementHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Producto", 4, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Mov.", 1, align.Right),
		headerCell("Entradas", 1, align.Right),
		headerCell("Salidas", 1, align.Right),
		headerCell("Ajustes", 1, align.Right),
		headerCell("Reserv.", 1, align.Right),
		headerCell("Liber.", 1, align.Right),
	)
}

func (g *MarotoReportGenerator) movementRows(products []rules.ProductMovementSummary) []core.Row {
	num := func(v int) core.Col {
		return col.New(1).Add(text.New(g.number(v), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(nonEmpty(p.ProductName, p.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			num(p.TotalMovements),
			num(p.StockIn),
			num(p.StockOut),
			num(p.Adjustments),
			num(p.Reserved),
			num(p.Released),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// number formatea con separador de miles en español: 12345 -> "12.345".
func (g *MarotoReportGenerator) number(v int) string {
	return g.printer.Sprintf("%d", v)
}

func alertLabel(t string) string {
	switch t {
	case entity.AlertTypeLowStock:
		return "Stock bajo"
	case entity.AlertTypeOutOfStock:
		return "Agotado"
	case entity.AlertTypeOverstock:
		return "Sobrestock"
	}
	return t
}

func period(from, to *time.Time) string {
	const layout = "02/01/2006"
	switch {
	case from == nil && to == nil:
		return "todo el historial"
	case from == nil:
		return "hasta " + to.Format(layout)
	case to == nil:
		return "desde " + from.Format(layout)
	}
	return from.Format(layout) + " – " + to.Format(layout)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

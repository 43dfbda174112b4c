package inventory

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

// InventoryReport datos del reporte PDF de inventario.
type InventoryReport struct {
	GeneratedAt  time.Time
	From, To     *time.Time
	ProductID    string // vacío = todos los productos
	ActiveAlerts []*entity.StockAlertView
	Summary      inventory.MovementSummary
}

// ReportGenerator puerto de renderizado del reporte (implementado con maroto en infraestructura).
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, report *InventoryReport) ([]byte, error)
}

// ReportUseCase arma el reporte de inventario: alertas activas y resumen de movimientos.
type ReportUseCase struct {
	alerts    *AlertUseCase
	movements *MovementUseCase
	generator ReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(alerts *AlertUseCase, movements *MovementUseCase, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{alerts: alerts, movements: movements, generator: generator, now: time.Now}
}

// Generate consulta alertas y resumen en paralelo y devuelve los bytes del PDF y su nombre de archivo.
func (uc *ReportUseCase) Generate(ctx context.Context, productID string, from, to *time.Time) ([]byte, string, error) {
	if err := checkRange(from, to); err != nil {
		return nil, "", err
	}
	report := &InventoryReport{GeneratedAt: uc.now(), From: from, To: to, ProductID: productID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		active, err := uc.alerts.GetActiveAlerts(gctx)
		if err != nil {
			return err
		}
		if productID != "" {
			active = filterByProduct(active, productID)
		}
		report.ActiveAlerts = active
		return nil
	})
	g.Go(func() error {
		summary, err := uc.movements.GetSummary(gctx, productID, from, to)
		report.Summary = summary
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}

	pdf, err := uc.generator.GenerateInventoryReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("inventario-%s.pdf", report.GeneratedAt.Format("20060102-1504"))
	return pdf, filename, nil
}

func filterByProduct(alerts []*entity.StockAlertView, productID string) []*entity.StockAlertView {
	out := alerts[:0:0]
	for _, a := range alerts {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out
}

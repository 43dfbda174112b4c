package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// ReportHandler genera el reporte PDF de inventario.
type ReportHandler struct {
	uc  *inventory.ReportUseCase
	log *logger.Logger
}

func NewReportHandler(uc *inventory.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// InventoryPDF godoc
// @Summary      Reporte PDF de inventario
// @Description  Alertas activas y resumen de movimientos del periodo.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        productId  query  string  false  "Producto"
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, filename, err := h.uc.Generate(c.UserContext(), c.Query("productId"), from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(doc)
}

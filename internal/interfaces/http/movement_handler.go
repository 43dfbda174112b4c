package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// MovementHandler consultas del historial de movimientos (protegido, solo lectura).
type MovementHandler struct {
	uc  *inventory.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// FindAll godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Producto"
// @Param        type       query  string  false  "STOCK_IN | STOCK_OUT | ADJUSTMENT | RESERVE | RELEASE"
// @Param        userId     query  string  false  "Usuario"
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD (incluye el día completo)"
// @Param        page       query  int     false  "Página"
// @Param        pageSize   query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.APIResponse{data=dto.MovementListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) FindAll(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.uc.FindAll(c.UserContext(), inventory.MovementQuery{
		ProductID: c.Query("productId"),
		Type:      c.Query("type"),
		UserID:    c.Query("userId"),
		StartDate: from,
		EndDate:   to,
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("pageSize", inventory.DefaultPageSize),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.MovementListResponse{
		PageResponse: dto.PageResponse{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Items:        dto.ToMovementResponses(page.Items),
	})
}

// FindByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Producto"
// @Param        page       query  int     false  "Página"
// @Param        pageSize   query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.APIResponse{data=dto.MovementListResponse}
// @Router       /api/inventory/movements/product/{productId} [get]
func (h *MovementHandler) FindByProduct(c *fiber.Ctx) error {
	page, err := h.uc.FindByProduct(c.UserContext(), c.Params("productId"), c.QueryInt("page", 1), c.QueryInt("pageSize", inventory.DefaultPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.MovementListResponse{
		PageResponse: dto.PageResponse{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Items:        dto.ToMovementResponses(page.Items),
	})
}

// Summary godoc
// @Summary      Resumen de movimientos
// @Description  Suma de cantidades por tipo (ADJUSTMENT con signo), global y por producto.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Producto"
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=dto.MovementSummaryResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/summary [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("productId"), from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.ToMovementSummaryResponse(summary))
}

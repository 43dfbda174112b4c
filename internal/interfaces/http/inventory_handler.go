package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	rules "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP del registro de stock (protegido).
type InventoryHandler struct {
	uc  *inventory.InventoryUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar stock
// @Description  Registros de stock con datos del producto, del más recientemente actualizado al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page          query  int   false  "Página (>= 1)"
// @Param        pageSize      query  int   false  "Tamaño de página (1..100, por defecto 20)"
// @Param        lowStockOnly  query  bool  false  "Solo registros con stock <= umbral"
// @Success      200  {object}  dto.APIResponse{data=dto.StockListResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("pageSize", inventory.DefaultPageSize), c.QueryBool("lowStockOnly", false))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.StockListResponse{
		PageResponse: dto.PageResponse{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Items:        dto.ToStockRecordResponses(page.Items),
	})
}

// Adjust godoc
// @Summary      Ajustar inventario
// @Description  Deltas relativos (stockDelta/reservedDelta) o valores absolutos (stock/reserved), nunca ambos.
// @Description  Registra los movimientos y reevalúa las alertas del producto en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                      true  "ID del producto"
// @Param        body       body  dto.AdjustInventoryRequest  true  "Ajuste"
// @Success      200  {object}  dto.APIResponse{data=dto.StockRecordResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [patch]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	adj, err := rules.NewAdjustment(req.StockDelta, req.ReservedDelta, req.Stock, req.Reserved)
	if err != nil {
		return respondError(c, h.log, err)
	}
	rec, err := h.uc.Adjust(c.UserContext(), c.Params("productId"), inventory.AdjustInput{
		Adjustment:        adj,
		LowStockThreshold: req.LowStockThreshold,
		MaxStock:          req.MaxStock,
		Reason:            req.Reason,
		ReferenceID:       req.ReferenceID,
		ReferenceType:     req.ReferenceType,
		UserID:            GetUserID(c),
		Notes:             req.Notes,
		SyncToProduct:     req.SyncToProduct,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "inventario actualizado", dto.ToStockRecordResponse(rec))
}

// Delete godoc
// @Summary      Eliminar registro de stock
// @Description  Elimina el registro y sus alertas; el historial de movimientos se conserva.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.DeleteStockResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.Delete(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "registro de inventario eliminado", dto.DeleteStockResponse{
		ProductID:     res.Record.ProductID,
		Stock:         res.Record.Stock,
		Reserved:      res.Record.Reserved,
		AlertsDeleted: res.AlertsDeleted,
	})
}

// Sync godoc
// @Summary      Sincronizar con el catálogo
// @Description  Crea registros (stock 0) para los productos activos que no tienen uno y reporta los huérfanos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.SyncResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/sync [post]
func (h *InventoryHandler) Sync(c *fiber.Ctx) error {
	res, err := h.uc.SyncWithProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "inventario sincronizado", dto.SyncResponse{
		SyncedProducts: res.SyncedProducts,
		OrphanedCount:  res.OrphanedCount,
		Created:        dto.ToStockRecordResponses(res.Created),
		Orphaned:       dto.ToStockRecordResponses(res.Orphaned),
	})
}

// RecordMovement godoc
// @Summary      Registrar movimiento (uso interno)
// @Description  STOCK_IN/STOCK_OUT/RESERVE/RELEASE con cantidad > 0; ADJUSTMENT fija el stock absoluto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201  {object}  dto.APIResponse{data=dto.StockRecordResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var req dto.RecordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.RecordMovement(c.UserContext(), inventory.MovementInput{
		ProductID:     req.ProductID,
		Type:          req.Type,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		ReferenceID:   req.ReferenceID,
		ReferenceType: req.ReferenceType,
		UserID:        GetUserID(c),
		Notes:         req.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, "movimiento registrado", dto.ToStockRecordResponse(rec))
}

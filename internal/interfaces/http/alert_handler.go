package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// AlertHandler maneja las alertas de inventario (protegido).
type AlertHandler struct {
	uc  *inventory.AlertUseCase
	log *logger.Logger
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear alerta manual
// @Description  Devuelve 409 si ya existe una alerta abierta del mismo tipo para el producto.
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "Alerta"
// @Success      201  {object}  dto.APIResponse{data=dto.AlertResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	alert, err := h.uc.Create(c.UserContext(), inventory.CreateAlertInput{
		ProductID:    req.ProductID,
		Type:         req.Type,
		Message:      req.Message,
		Threshold:    req.Threshold,
		CurrentStock: req.CurrentStock,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, "alerta creada", dto.ToAlertResponse(alert))
}

// FindAll godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        productId   query  string  false  "Producto"
// @Param        type        query  string  false  "LOW_STOCK | OUT_OF_STOCK | OVERSTOCK"
// @Param        isResolved  query  bool    false  "Estado"
// @Param        startDate   query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate     query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        page        query  int     false  "Página"
// @Param        pageSize    query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.APIResponse{data=dto.AlertListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *AlertHandler) FindAll(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	resolved, err := optionalBool(c.Query("isResolved"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.uc.FindAll(c.UserContext(), inventory.AlertQuery{
		ProductID:  c.Query("productId"),
		Type:       c.Query("type"),
		IsResolved: resolved,
		StartDate:  from,
		EndDate:    to,
		Page:       c.QueryInt("page", 1),
		PageSize:   c.QueryInt("pageSize", inventory.DefaultPageSize),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", alertPage(page))
}

// FindByProduct godoc
// @Summary      Alertas de un producto
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Producto"
// @Param        page       query  int     false  "Página"
// @Param        pageSize   query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.APIResponse{data=dto.AlertListResponse}
// @Router       /api/inventory/alerts/product/{productId} [get]
func (h *AlertHandler) FindByProduct(c *fiber.Ctx) error {
	page, err := h.uc.FindByProduct(c.UserContext(), c.Params("productId"), c.QueryInt("page", 1), c.QueryInt("pageSize", inventory.DefaultPageSize))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", alertPage(page))
}

// Active godoc
// @Summary      Alertas activas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.AlertResponse}
// @Router       /api/inventory/alerts/active [get]
func (h *AlertHandler) Active(c *fiber.Ctx) error {
	alerts, err := h.uc.GetActiveAlerts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.ToAlertResponses(alerts))
}

// Summary godoc
// @Summary      Resumen de alertas
// @Description  Totales, activas, resueltas y activas por tipo. Se sirve desde caché cuando hay Redis.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.AlertSummaryResponse}
// @Router       /api/inventory/alerts/summary [get]
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	counts, err := h.uc.GetAlertSummary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "", dto.ToAlertSummaryResponse(counts))
}

// Resolve godoc
// @Summary      Resolver alerta
// @Description  Idempotente: resolver una alerta ya resuelta conserva la fecha original.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.APIResponse{data=dto.AlertResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	alert, err := h.uc.Resolve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "alerta resuelta", dto.ToAlertResponseBare(alert))
}

// BulkResolve godoc
// @Summary      Resolver alertas en bloque
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertIDsRequest  true  "IDs"
// @Success      200  {object}  dto.APIResponse{data=dto.BulkResultResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/bulk-resolve [post]
func (h *AlertHandler) BulkResolve(c *fiber.Ctx) error {
	var req dto.AlertIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.uc.BulkResolve(c.UserContext(), req.IDs, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "alertas resueltas", dto.BulkResultResponse{Count: n})
}

// Check godoc
// @Summary      Barrido de alertas
// @Description  Evalúa todos los registros con umbral y crea las alertas que falten.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.CheckAlertsResponse}
// @Router       /api/inventory/alerts/check [post]
func (h *AlertHandler) Check(c *fiber.Ctx) error {
	created, err := h.uc.CheckAndCreateAlerts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "barrido completado", dto.CheckAlertsResponse{
		Created: len(created),
		Alerts:  dto.ToAlertResponses(created),
	})
}

// Delete godoc
// @Summary      Eliminar alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "alerta eliminada", nil)
}

// BulkDelete godoc
// @Summary      Eliminar alertas en bloque
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertIDsRequest  true  "IDs"
// @Success      200  {object}  dto.APIResponse{data=dto.BulkResultResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/bulk-delete [post]
func (h *AlertHandler) BulkDelete(c *fiber.Ctx) error {
	var req dto.AlertIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.uc.BulkDelete(c.UserContext(), req.IDs)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, "alertas eliminadas", dto.BulkResultResponse{Count: n})
}

func alertPage(page *inventory.Page[*entity.StockAlertView]) dto.AlertListResponse {
	return dto.AlertListResponse{
		PageResponse: dto.PageResponse{Total: page.Total, Page: page.Page, PageSize: page.PageSize},
		Items:        dto.ToAlertResponses(page.Items),
	}
}

// dateRange lee startDate/endDate; endDate con formato de día cubre el día completo.
func dateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := dto.ParseDate(c.Query("startDate"), false)
	if err != nil {
		return nil, nil, err
	}
	to, err := dto.ParseDate(c.Query("endDate"), true)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func optionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &b, nil
}

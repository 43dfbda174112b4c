package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory      *inventory.InventoryUseCase
	Movements      *inventory.MovementUseCase
	Alerts         *inventory.AlertUseCase
	Reports        *inventory.ReportUseCase // nil = sin endpoint de reportes
	JWTSecret      string
	Log            *logger.Logger
	RequestTimeout time.Duration
	Health         func(ctx context.Context) error // nil = siempre ok
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("UPSTREAM_UNAVAILABLE", "base de datos no disponible"))
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token y un rol reconocido)
	readers := RequireRole(jwt.RoleAdmin, jwt.RoleService, jwt.RoleBodeguero, jwt.RoleVendedor)
	inv := app.Group("/api/inventory", AuthMiddleware(deps.JWTSecret), readers, RequestTimeout(deps.RequestTimeout))

	writers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleService)
	adminOnly := RequireRole(jwt.RoleAdmin)

	invHandler := NewInventoryHandler(deps.Inventory, log)
	movHandler := NewMovementHandler(deps.Movements, log)
	alertHandler := NewAlertHandler(deps.Alerts, log)

	// Las rutas fijas van antes de /:productId
	inv.Get("/", invHandler.List)
	inv.Post("/sync", adminOnly, invHandler.Sync)

	// Movements
	inv.Get("/movements", movHandler.FindAll)
	inv.Get("/movements/summary", movHandler.Summary)
	inv.Get("/movements/product/:productId", movHandler.FindByProduct)
	inv.Post("/movements", RequireRole(jwt.RoleService, jwt.RoleAdmin), invHandler.RecordMovement)

	// Alerts
	inv.Get("/alerts", alertHandler.FindAll)
	inv.Post("/alerts", writers, alertHandler.Create)
	inv.Get("/alerts/active", alertHandler.Active)
	inv.Get("/alerts/summary", alertHandler.Summary)
	inv.Get("/alerts/product/:productId", alertHandler.FindByProduct)
	inv.Post("/alerts/check", writers, alertHandler.Check)
	inv.Post("/alerts/bulk-resolve", writers, alertHandler.BulkResolve)
	inv.Post("/alerts/bulk-delete", writers, alertHandler.BulkDelete)
	inv.Post("/alerts/:id/resolve", writers, alertHandler.Resolve)
	inv.Delete("/alerts/:id", writers, alertHandler.Delete)

	// Reportes
	if deps.Reports != nil {
		reportHandler := NewReportHandler(deps.Reports, log)
		inv.Get("/report.pdf", reportHandler.InventoryPDF)
	}

	inv.Patch("/:productId", writers, invHandler.Adjust)
	inv.Delete("/:productId", adminOnly, invHandler.Delete)
}

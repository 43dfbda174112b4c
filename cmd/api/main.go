package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/inventario-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-stock/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock/pkg/config"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	// Caché del resumen de alertas: opcional, sin Redis se consulta siempre la DB.
	var summaryCache inventory.AlertSummaryCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, resumen de alertas sin caché")
		} else {
			defer client.Close()
			summaryCache = cache.NewAlertSummaryCache(client, cfg.Redis.SummaryTTL)
		}
	}

	// Notificaciones: RabbitMQ si está configurado; si no, solo log.
	var notifier inventory.AlertNotifier = notify.NewLogNotifier(log)
	if cfg.AMQP.URL != "" {
		conn, ch, err := notify.SetupConn(cfg.AMQP.URL, cfg.AMQP.Exchange, 5, 2*time.Second, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, las alertas solo se registran en el log")
		} else {
			defer conn.Close()
			defer ch.Close()
			notifier = notify.NewPublisher(ch, cfg.AMQP.Exchange)
		}
	}

	movementUC := inventory.NewMovementUseCase(movementRepo)
	alertUC := inventory.NewAlertUseCase(alertRepo, stockRepo, productRepo, notifier, summaryCache, log)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, stockRepo, movementUC, alertUC, log)
	reportUC := inventory.NewReportUseCase(alertUC, movementUC, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	sweeper := inventory.NewSweepScheduler(alertUC, cfg.Alerts.SweepInterval, log)
	sweeper.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:      inventoryUC,
		Movements:      movementUC,
		Alerts:         alertUC,
		Reports:        reportUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Health:         pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sweeper.Stop()
	if err := alertUC.WaitNotifications(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("quedaron notificaciones de alertas sin enviar")
	}

	log.Info().Msg("aplicación detenida")
}

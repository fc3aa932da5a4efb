package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appmetrics "github.com/tu-usuario/resto-metrics/internal/application/metrics"
	"github.com/tu-usuario/resto-metrics/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/resto-metrics/internal/interfaces/http"
	"github.com/tu-usuario/resto-metrics/pkg/config"
	"github.com/tu-usuario/resto-metrics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	engine := appmetrics.NewEngine(appmetrics.Repos{
		Businesses: postgres.NewBusinessRepository(pool),
		Entries:    postgres.NewDailyEntryRepository(pool),
		Schedule:   postgres.NewScheduleRepository(pool),
		Goals:      postgres.NewGoalRepository(pool),
		Suppliers:  postgres.NewSupplierRepository(pool),
		Invoices:   postgres.NewInvoiceRepository(pool),
		Income:     postgres.NewIncomeRepository(pool),
		Products:   postgres.NewManagedProductRepository(pool),
		Summaries:  postgres.NewMonthlySummaryRepository(pool),
	}, appmetrics.Config{
		FetchTimeout: cfg.Metrics.FetchTimeout,
		ChartMonths:  cfg.Metrics.ChartMonths,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto Metrics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Metrics:   httpRouter.NewMetricsHandler(engine),
		JWTSecret: cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}

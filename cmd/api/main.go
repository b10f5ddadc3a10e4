package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/invoicepro/internal/application/dto"
	"github.com/jhoicas/invoicepro/internal/application/invoicing"
	"github.com/jhoicas/invoicepro/internal/domain/document"
	"github.com/jhoicas/invoicepro/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoicepro/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/invoicepro/internal/interfaces/http"
	"github.com/jhoicas/invoicepro/pkg/config"
	"github.com/jhoicas/invoicepro/pkg/logger"
	"github.com/jhoicas/invoicepro/pkg/metrics"
	"github.com/jhoicas/invoicepro/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("engine", cfg.Document.Engine).
		Msg("iniciando aplicación")

	fm, err := money.NewFormatter(cfg.Document.CurrencyLocale, cfg.Document.CurrencyCode)
	if err != nil {
		log.Fatal().Err(err).Msg("formato de moneda")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Sesiones en memoria: nada sobrevive al proceso
	sessionRepo := memory.NewSessionRepository()
	sessionRepo.StartJanitor(ctx, cfg.Session.TTL, time.Minute, log.Component("janitor"), m.SetActiveSessions)

	docOpts := document.Options{
		Brand:  cfg.Document.Brand,
		Footer: cfg.Document.FooterText,
		Money:  fm,
	}
	sessionUC := invoicing.NewSessionUseCase(sessionRepo, invoicing.SessionConfig{
		DueDays: cfg.Session.DueDays,
		Brand:   cfg.Document.Brand,
		Money:   fm,
	})
	exportUC := invoicing.NewExportUseCase(
		sessionUC, newGenerator(cfg.Document.Engine, docOpts), cfg.Document.Engine, m, log.Component("export"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "InvoicePro API",
		}))
	} else {
		log.Warn().Err(err).Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name, Sessions: sessionUC.Active()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions: sessionUC,
		Export:   exportUC,
		Log:      log.Component("http"),
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Int("sesiones_descartadas", sessionUC.Active()).Msg("aplicación detenida")
}

// newGenerator elige el motor de PDF. config.Load ya validó el nombre.
func newGenerator(engine string, opts document.Options) invoicing.InvoicePDFGenerator {
	if engine == config.EngineMaroto {
		return infrapdf.NewMarotoPDFGenerator(opts)
	}
	return infrapdf.NewLayoutPDFGenerator(opts)
}

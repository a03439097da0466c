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

	_ "github.com/jhoicas/Timesheet-api/docs"
	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Timesheet-api/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/Timesheet-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Timesheet-api/internal/interfaces/http"
	"github.com/jhoicas/Timesheet-api/pkg/config"
	"github.com/jhoicas/Timesheet-api/pkg/logger"
)

// @title                       Timesheet API
// @version                     1.0
// @description                 Registro de horas por proyecto y facturación de periodos.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer store.close()

	billingCfg := billing.Config{
		DefaultCurrency:   cfg.Billing.DefaultCurrency,
		PaymentLinkDomain: cfg.Billing.PaymentLinkDomain,
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	projectUC := usecase.NewProjectUseCase(store.projects, store.entries)
	timeEntryUC := usecase.NewTimeEntryUseCase(store.entries, store.projects)
	clientUC := usecase.NewClientUseCase(store.tx, store.users)
	companyUC := usecase.NewCompanyUseCase(store.settings)
	paymentMethodUC := billing.NewPaymentMethodUseCase(store.tx, store.pms)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		store.tx, store.entries, store.pms, store.users, store.settings, billingCfg,
	)
	invoiceUC := billing.NewInvoiceUseCase(store.tx, store.invoices, store.entries, store.pms, billingCfg)

	// Documentos: PDF imprimible y hoja de cálculo
	documentUC := billing.NewDocumentUseCase(
		store.invoices, store.entries, store.pms,
		infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewExcelizeExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Timesheet API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProjectUC:         projectUC,
		TimeEntryUC:       timeEntryUC,
		ClientUC:          clientUC,
		CompanyUC:         companyUC,
		PaymentMethodUC:   paymentMethodUC,
		CreateInvoice:     createInvoiceUC,
		InvoiceUC:         invoiceUC,
		DocumentUC:        documentUC,
		JWTSecret:         cfg.JWT.Secret,
		AllowRegistration: cfg.Auth.AllowRegistration,
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

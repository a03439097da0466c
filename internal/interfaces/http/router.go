package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProjectUC         *usecase.ProjectUseCase
	TimeEntryUC       *usecase.TimeEntryUseCase
	ClientUC          *usecase.ClientUseCase
	CompanyUC         *usecase.CompanyUseCase
	PaymentMethodUC   *billing.PaymentMethodUseCase
	CreateInvoice     *billing.CreateInvoiceUseCase
	InvoiceUC         *billing.InvoiceUseCase
	DocumentUC        *billing.DocumentUseCase
	JWTSecret         string
	AllowRegistration bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleClient)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.AllowRegistration)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/change-password", anyRole, authHandler.ChangePassword)

	// Projects: lectura para admin y client, escritura solo admin
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := protected.Group("/projects")
	projects.Get("/", anyRole, projectHandler.List)
	projects.Post("/", adminOnly, projectHandler.Create)
	projects.Put("/:id", adminOnly, projectHandler.Update)
	projects.Delete("/:id", adminOnly, projectHandler.Delete)

	// Time entries
	entryHandler := NewTimeEntryHandler(deps.TimeEntryUC)
	entries := protected.Group("/time-entries")
	entries.Get("/", anyRole, entryHandler.List)
	entries.Post("/", adminOnly, entryHandler.Create)
	entries.Patch("/:id", adminOnly, entryHandler.Update)
	entries.Delete("/:id", adminOnly, entryHandler.Delete)

	// Clients (admin)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients", adminOnly)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Payment methods (admin)
	pmHandler := NewPaymentMethodHandler(deps.PaymentMethodUC)
	pms := protected.Group("/payment-methods", adminOnly)
	pms.Get("/", pmHandler.List)
	pms.Post("/", pmHandler.Create)
	pms.Get("/:id", pmHandler.Get)
	pms.Patch("/:id", pmHandler.Update)
	pms.Delete("/:id", pmHandler.Delete)

	// Company settings (admin)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	settings := protected.Group("/settings", adminOnly)
	settings.Get("/company", companyHandler.Get)
	settings.Put("/company", companyHandler.Upsert)

	// Invoices (admin)
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoiceUC, deps.DocumentUC)
	invoices := protected.Group("/invoices", adminOnly)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/mark-paid", invoiceHandler.MarkPaid)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xlsx", invoiceHandler.DownloadXLSX)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

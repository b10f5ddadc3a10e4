package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoicepro/internal/application/invoicing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions *invoicing.SessionUseCase
	Export   *invoicing.ExportUseCase
	Log      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	invoiceHandler := NewInvoiceHandler(deps.Sessions)
	exportHandler := NewExportHandler(deps.Export)

	sessions := api.Group("/sessions")
	sessions.Post("/", invoiceHandler.Create)

	// Rutas sobre una sesión existente (requieren :id con formato UUID)
	one := sessions.Group("/:id", SessionMiddleware())
	one.Get("/", invoiceHandler.Get)
	one.Delete("/", invoiceHandler.Delete)
	one.Patch("/fields", invoiceHandler.SetField)
	one.Get("/totals", invoiceHandler.Totals)
	one.Get("/preview", invoiceHandler.Preview)
	one.Get("/export", exportHandler.Download)

	items := one.Group("/items")
	items.Post("/", invoiceHandler.AddItem)
	items.Patch("/:itemId", invoiceHandler.SetItemField)
	items.Delete("/:itemId", invoiceHandler.RemoveItem)
}

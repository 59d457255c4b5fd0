package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)
	app.Get("/invoices/:id/print", handler.PrintIdentityRequired, handler.PrintInvoice)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Post("/users", handler.ProvisionUser)
	api.Get("/me", handler.IdentityRequired, handler.CurrentUser)

	invoices := api.Group("/invoices", handler.IdentityRequired)
	invoices.Get("", handler.ListInvoices)
	invoices.Post("", handler.CreateInvoice)
	invoices.Get("/:id", handler.GetInvoice)
	invoices.Put("/:id", handler.UpdateInvoice)
	invoices.Delete("/:id", handler.DeleteInvoice)

	clients := api.Group("/clients", handler.IdentityRequired)
	clients.Get("", handler.ListClients)
	clients.Post("", handler.CreateClient)
	clients.Delete("/:id", handler.DeleteClient)

	settings := api.Group("/settings", handler.IdentityRequired)
	settings.Get("", handler.GetSettings)
	settings.Post("", handler.UpdateSettings)
	settings.Get("/suggestions", handler.GetInvoiceSuggestion)

	api.Get("/stats", handler.IdentityRequired, handler.GetStats)

	export := api.Group("/export", handler.IdentityRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}

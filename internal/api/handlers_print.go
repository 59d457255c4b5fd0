package api

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/models"
	"github.com/terraincognita07/invoicehero/internal/services"
)

type printInvoiceView struct {
	Invoice    models.Invoice
	Status     string
	ClientName string
	Client     *models.Client
	Business   models.Settings
	Currency   string
}

func (handler *Handler) PrintInvoice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	ctx := c.UserContext()

	invoice, err := handler.invoices.Get(ctx, user.ID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "failed to fetch invoice")
	}

	view := printInvoiceView{
		Invoice:    invoice,
		Status:     services.InvoiceDisplayStatus(invoice, handler.localNow()),
		ClientName: models.UnknownClientName,
	}

	client, err := handler.clients.Get(ctx, user.ID, invoice.ClientID)
	switch {
	case err == nil:
		view.Client = &client
		view.ClientName = client.Name
	case !errors.Is(err, services.ErrClientNotFound):
		return respondServiceError(c, err, "failed to fetch client")
	}

	settings, err := handler.settings.Get(ctx, user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to fetch settings")
	}
	view.Business = settings
	view.Currency = settings.Currency

	var output bytes.Buffer
	if err := handler.templates.ExecuteTemplate(&output, "invoice_print.html", view); err != nil {
		slog.Error("render invoice print view", "error", err, "invoice_id", invoice.ID)
		return apiError(c, fiber.StatusInternalServerError, "failed to render invoice")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(output.Bytes())
}

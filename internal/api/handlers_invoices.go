package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func (handler *Handler) ListInvoices(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	invoices, err := handler.invoices.List(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to fetch invoices")
	}
	return c.JSON(invoices)
}

func (handler *Handler) GetInvoice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	invoice, err := handler.invoices.Get(c.UserContext(), user.ID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "failed to fetch invoice")
	}
	return c.JSON(invoice)
}

func (handler *Handler) CreateInvoice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := services.InvoiceInput{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	invoice, err := handler.invoices.Create(c.UserContext(), user.ID, payload)
	if err != nil {
		return respondServiceError(c, err, "failed to create invoice")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func (handler *Handler) UpdateInvoice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	patch := services.InvoicePatch{}
	if err := decodeJSONBody(c, &patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	invoice, err := handler.invoices.Update(c.UserContext(), user.ID, c.Params("id"), patch)
	if err != nil {
		return respondServiceError(c, err, "failed to update invoice")
	}
	return c.JSON(invoice)
}

func (handler *Handler) DeleteInvoice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.invoices.Delete(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete invoice")
	}
	return acknowledge(c)
}

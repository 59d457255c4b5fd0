package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	clients, err := handler.clients.List(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to fetch clients")
	}
	return c.JSON(clients)
}

func (handler *Handler) CreateClient(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := services.ClientInput{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	client, err := handler.clients.Create(c.UserContext(), user.ID, payload)
	if err != nil {
		return respondServiceError(c, err, "failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (handler *Handler) DeleteClient(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.clients.Delete(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete client")
	}
	return acknowledge(c)
}

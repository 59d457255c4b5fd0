package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func (handler *Handler) ProvisionUser(c *fiber.Ctx) error {
	payload := services.ProvisionInput{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := handler.identity.Provision(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			return apiError(c, fiber.StatusConflict, "user already exists")
		}
		slog.Error("provision user", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to provision user")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

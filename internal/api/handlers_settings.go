package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settings.Get(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to fetch settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	patch := services.SettingsPatch{}
	if err := decodeJSONBody(c, &patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settings.Update(c.UserContext(), user.ID, patch)
	if err != nil {
		return respondServiceError(c, err, "failed to save settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) GetInvoiceSuggestion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	suggestion, err := handler.settings.Suggest(c.UserContext(), user.ID, handler.localNow())
	if err != nil {
		return respondServiceError(c, err, "failed to fetch settings")
	}
	return c.JSON(suggestion)
}

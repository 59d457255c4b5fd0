package api

import "github.com/gofiber/fiber/v2"

const healthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"stripe":    handler.paymentsConfigured,
		"timestamp": handler.now().UTC().Format(healthTimestampLayout),
	})
}

func (handler *Handler) CurrentUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

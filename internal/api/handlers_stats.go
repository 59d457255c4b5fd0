package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := handler.stats.Overview(c.UserContext(), user.ID, handler.localNow())
	if err != nil {
		return respondServiceError(c, err, "failed to build stats")
	}
	return c.JSON(overview)
}

package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/models"
	"github.com/terraincognita07/invoicehero/internal/services"
)

const (
	contextUserKey  = "current_user"
	printTokenQuery = "token"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// IdentityRequired resolves the Authorization header to a user. A missing
// header falls through to the configured fallback user.
func (handler *Handler) IdentityRequired(c *fiber.Ctx) error {
	return handler.resolveIdentity(c, bearerCredential(c.Get(fiber.HeaderAuthorization)))
}

// PrintIdentityRequired also accepts the credential as a query parameter so
// the print view can be opened from a plain link.
func (handler *Handler) PrintIdentityRequired(c *fiber.Ctx) error {
	credential := bearerCredential(c.Get(fiber.HeaderAuthorization))
	if credential == "" {
		credential = strings.TrimSpace(c.Query(printTokenQuery))
	}
	return handler.resolveIdentity(c, credential)
}

func (handler *Handler) resolveIdentity(c *fiber.Ctx, credential string) error {
	// Header and query values alias fasthttp buffers; provisioning may keep the id.
	user, err := handler.identity.Resolve(c.UserContext(), strings.Clone(credential))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotProvisioned):
			return apiError(c, fiber.StatusUnauthorized, "user not provisioned")
		case errors.Is(err, services.ErrMissingCredential), errors.Is(err, services.ErrInvalidCredential):
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		default:
			slog.Error("resolve identity", "error", err, "path", c.Path())
			return apiError(c, fiber.StatusInternalServerError, "failed to resolve identity")
		}
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

// bearerCredential strips a leading "Bearer " and returns the rest of the
// header unchanged.
func bearerCredential(header string) string {
	value := strings.TrimSpace(header)
	if token, ok := strings.CutPrefix(value, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return value
}

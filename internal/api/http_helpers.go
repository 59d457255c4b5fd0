package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

var errInvalidPayload = errors.New("invalid payload")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps not-found errors to 404 and logs everything else
// as a 500 carrying message.
func respondServiceError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, services.ErrInvoiceNotFound) || errors.Is(err, services.ErrClientNotFound) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	slog.Error(message, "error", err, "method", c.Method(), "path", c.Path())
	return apiError(c, fiber.StatusInternalServerError, message)
}

// decodeJSONBody reads the request body as JSON. An empty body decodes as {}.
func decodeJSONBody(c *fiber.Ctx, target any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

func acknowledge(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("invoicehero-export-%s.%s", now.Format(time.DateOnly), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}

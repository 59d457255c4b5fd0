package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	document, err := handler.export.Document(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err, "failed to export data")
	}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		slog.Error("encode export document", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	setExportAttachmentHeaders(c, "application/json; charset=utf-8", buildExportFilename(handler.localNow(), "json"))
	return c.Send(payload)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := handler.localNow()
	rows, err := handler.export.CSVRows(c.UserContext(), user.ID, now)
	if err != nil {
		return respondServiceError(c, err, "failed to export data")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}
	if err := writer.WriteAll(rows); err != nil {
		slog.Error("encode export csv", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

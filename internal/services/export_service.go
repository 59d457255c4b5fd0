package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/invoicehero/internal/models"
)

var ErrExportFailed = errors.New("export failed")

var ExportCSVHeaders = []string{
	"Number",
	"Client",
	"Amount",
	"Status",
	"Due date",
	"Created",
}

type ExportService struct {
	repos Repositories
}

func NewExportService(repos Repositories) *ExportService {
	return &ExportService{repos: repos}
}

// Document returns the caller's slice of the store in the document layout.
func (service *ExportService) Document(ctx context.Context, userID string) (document *models.Document, err error) {
	ctx, span := startSpan(ctx, "ExportService.Document", userID)
	defer func() { finishSpan(span, err) }()

	document = models.NewDocument()

	user, err := service.repos.Users.FindByID(ctx, userID)
	switch {
	case err == nil:
		document.Users[user.ID] = user
	case !errors.Is(err, models.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	clients, err := service.repos.Clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	for _, client := range clients {
		document.Clients[client.ID] = client
	}

	invoices, err := service.repos.Invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	for _, invoice := range invoices {
		document.Invoices[invoice.ID] = invoice
	}

	settings, err := service.repos.Settings.FindByUser(ctx, userID)
	switch {
	case err == nil:
		document.Settings[userID] = settings
	case !errors.Is(err, models.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return document, nil
}

// CSVRows renders one row per invoice using the derived display status and
// Unknown for missing clients.
func (service *ExportService) CSVRows(ctx context.Context, userID string, now time.Time) (rows [][]string, err error) {
	ctx, span := startSpan(ctx, "ExportService.CSVRows", userID)
	defer func() { finishSpan(span, err) }()

	clients, err := service.repos.Clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	invoices, err := service.repos.Invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return BuildInvoiceCSVRows(invoices, clients, now), nil
}

func BuildInvoiceCSVRows(invoices []models.Invoice, clients []models.Client, now time.Time) [][]string {
	clientName := ClientNameLookup(clients)
	rows := make([][]string, 0, len(invoices))
	for _, invoice := range invoices {
		rows = append(rows, []string{
			invoice.Number,
			clientName(invoice.ClientID),
			invoice.Amount.Decimal().StringFixed(2),
			InvoiceDisplayStatus(invoice, now),
			invoice.DueDate,
			invoice.CreatedAt.In(now.Location()).Format(time.DateOnly),
		})
	}
	return rows
}

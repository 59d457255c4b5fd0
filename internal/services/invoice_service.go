package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/invoicehero/internal/metrics"
	"github.com/terraincognita07/invoicehero/internal/models"
)

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrListInvoicesFailed  = errors.New("list invoices failed")
	ErrLoadInvoiceFailed   = errors.New("load invoice failed")
	ErrCreateInvoiceFailed = errors.New("create invoice failed")
	ErrUpdateInvoiceFailed = errors.New("update invoice failed")
	ErrDeleteInvoiceFailed = errors.New("delete invoice failed")
)

// InvoiceInput carries the caller-writable fields of a new invoice. The
// amount is stored as given; it is not recomputed from the items.
type InvoiceInput struct {
	ClientID string            `json:"clientId"`
	Number   string            `json:"number"`
	Items    []models.LineItem `json:"items"`
	Amount   models.Amount     `json:"amount"`
	DueDate  string            `json:"dueDate"`
	Notes    string            `json:"notes"`
	Status   string            `json:"status"`
}

// InvoicePatch is a partial update. Only the fields listed here can change;
// nil fields keep their stored value.
type InvoicePatch struct {
	ClientID *string            `json:"clientId"`
	Number   *string            `json:"number"`
	Items    *[]models.LineItem `json:"items"`
	Amount   *models.Amount     `json:"amount"`
	DueDate  *string            `json:"dueDate"`
	Notes    *string            `json:"notes"`
	Status   *string            `json:"status"`
}

func (input *InvoiceInput) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ClientID models.Text       `json:"clientId"`
		Number   models.Text       `json:"number"`
		Items    []models.LineItem `json:"items"`
		Amount   models.Amount     `json:"amount"`
		DueDate  models.Text       `json:"dueDate"`
		Notes    models.Text       `json:"notes"`
		Status   models.Text       `json:"status"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*input = InvoiceInput{
		ClientID: decoded.ClientID.String(),
		Number:   decoded.Number.String(),
		Items:    decoded.Items,
		Amount:   decoded.Amount,
		DueDate:  decoded.DueDate.String(),
		Notes:    decoded.Notes.String(),
		Status:   decoded.Status.String(),
	}
	return nil
}

func (patch *InvoicePatch) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ClientID *models.Text       `json:"clientId"`
		Number   *models.Text       `json:"number"`
		Items    *[]models.LineItem `json:"items"`
		Amount   *models.Amount     `json:"amount"`
		DueDate  *models.Text       `json:"dueDate"`
		Notes    *models.Text       `json:"notes"`
		Status   *models.Text       `json:"status"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*patch = InvoicePatch{
		ClientID: models.OptionalText(decoded.ClientID),
		Number:   models.OptionalText(decoded.Number),
		Items:    decoded.Items,
		Amount:   decoded.Amount,
		DueDate:  models.OptionalText(decoded.DueDate),
		Notes:    models.OptionalText(decoded.Notes),
		Status:   models.OptionalText(decoded.Status),
	}
	return nil
}

func (patch InvoicePatch) Apply(invoice *models.Invoice) {
	if patch.ClientID != nil {
		invoice.ClientID = *patch.ClientID
	}
	if patch.Number != nil {
		invoice.Number = *patch.Number
	}
	if patch.Items != nil {
		invoice.Items = append([]models.LineItem{}, (*patch.Items)...)
	}
	if patch.Amount != nil {
		invoice.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		invoice.DueDate = *patch.DueDate
	}
	if patch.Notes != nil {
		invoice.Notes = *patch.Notes
	}
	if patch.Status != nil {
		invoice.Status = *patch.Status
	}
}

type InvoiceSettingsReader interface {
	Effective(ctx context.Context, userID string) (EffectiveSettings, error)
}

type InvoiceService struct {
	invoices InvoiceRepository
	settings InvoiceSettingsReader
	location *time.Location
	now      func() time.Time
}

func NewInvoiceService(invoices InvoiceRepository, settings InvoiceSettingsReader, location *time.Location) *InvoiceService {
	if location == nil {
		location = time.UTC
	}
	return &InvoiceService{
		invoices: invoices,
		settings: settings,
		location: location,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for creation times and due-date defaults.
func (service *InvoiceService) WithClock(now func() time.Time) *InvoiceService {
	service.now = now
	return service
}

func (service *InvoiceService) List(ctx context.Context, userID string) (invoices []models.Invoice, err error) {
	ctx, span := startSpan(ctx, "InvoiceService.List", userID)
	defer func() { finishSpan(span, err) }()

	invoices, err = service.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListInvoicesFailed, err)
	}
	return invoices, nil
}

func (service *InvoiceService) Get(ctx context.Context, userID string, invoiceID string) (invoice models.Invoice, err error) {
	ctx, span := startSpan(ctx, "InvoiceService.Get", userID)
	defer func() { finishSpan(span, err) }()

	invoice, err = service.invoices.FindByIDForUser(ctx, invoiceID, userID)
	if err != nil {
		return models.Invoice{}, invoiceError(ErrLoadInvoiceFailed, err)
	}
	return invoice, nil
}

// Create stores a new invoice owned by userID. A blank number or due date is
// filled from the owner's effective settings.
func (service *InvoiceService) Create(ctx context.Context, userID string, input InvoiceInput) (invoice models.Invoice, err error) {
	ctx, span := startSpan(ctx, "InvoiceService.Create", userID)
	defer func() {
		metrics.ObserveInvoiceMutation("create", err)
		finishSpan(span, err)
	}()

	now := service.now()
	invoice = models.Invoice{
		ID:        newRecordID(invoiceIDPrefix),
		UserID:    userID,
		ClientID:  input.ClientID,
		Number:    input.Number,
		Items:     append([]models.LineItem{}, input.Items...),
		Amount:    input.Amount,
		DueDate:   input.DueDate,
		Notes:     input.Notes,
		Status:    input.Status,
		CreatedAt: now.UTC(),
	}

	if isBlank(invoice.Number) || isBlank(invoice.DueDate) {
		effective, err := service.settings.Effective(ctx, userID)
		if err != nil {
			return models.Invoice{}, fmt.Errorf("%w: %v", ErrCreateInvoiceFailed, err)
		}
		if isBlank(invoice.Number) {
			invoice.Number = effective.NextInvoiceNumber()
		}
		if isBlank(invoice.DueDate) {
			invoice.DueDate = effective.DueDateFrom(now.In(service.location))
		}
	}

	if err := service.invoices.Create(ctx, &invoice); err != nil {
		return models.Invoice{}, fmt.Errorf("%w: %v", ErrCreateInvoiceFailed, err)
	}
	return invoice, nil
}

func (service *InvoiceService) Update(ctx context.Context, userID string, invoiceID string, patch InvoicePatch) (invoice models.Invoice, err error) {
	ctx, span := startSpan(ctx, "InvoiceService.Update", userID)
	defer func() {
		metrics.ObserveInvoiceMutation("update", err)
		finishSpan(span, err)
	}()

	invoice, err = service.invoices.UpdateForUser(ctx, invoiceID, userID, patch.Apply)
	if err != nil {
		return models.Invoice{}, invoiceError(ErrUpdateInvoiceFailed, err)
	}
	return invoice, nil
}

func (service *InvoiceService) Delete(ctx context.Context, userID string, invoiceID string) (err error) {
	ctx, span := startSpan(ctx, "InvoiceService.Delete", userID)
	defer func() {
		metrics.ObserveInvoiceMutation("delete", err)
		finishSpan(span, err)
	}()

	if err := service.invoices.DeleteForUser(ctx, invoiceID, userID); err != nil {
		return invoiceError(ErrDeleteInvoiceFailed, err)
	}
	return nil
}

func invoiceError(failure error, err error) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrInvoiceNotFound, err)
	}
	return fmt.Errorf("%w: %v", failure, err)
}

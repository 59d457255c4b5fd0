package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/terraincognita07/invoicehero/internal/models"
)

var ErrImportFailed = errors.New("import failed")

type ImportSummary struct {
	UsersCreated    int
	ClientsCreated  int
	InvoicesCreated int
	SettingsMerged  int
	Skipped         int
}

type ImportService struct {
	repos Repositories
}

func NewImportService(repos Repositories) *ImportService {
	return &ImportService{repos: repos}
}

// Import copies a legacy document into the store. Records whose id already
// exists are skipped, as are clients and invoices without an owner. Settings
// are merged field by field, keeping stored values the document leaves empty.
func (service *ImportService) Import(ctx context.Context, document *models.Document) (summary ImportSummary, err error) {
	ctx, span := startSpan(ctx, "ImportService.Import", "")
	defer func() { finishSpan(span, err) }()

	document.Normalize()

	for _, key := range sortedKeys(document.Users) {
		user := document.Users[key]
		if user.ID == "" {
			user.ID = key
		}
		if user.Email == "" {
			user.Email = models.DerivedEmail(user.ID)
		}
		if user.Name == "" {
			user.Name = models.PlaceholderUserName
		}
		created, err := createOrSkip(service.repos.Users.Create(ctx, &user))
		if err != nil {
			return summary, fmt.Errorf("%w: user %s: %v", ErrImportFailed, key, err)
		}
		summary.count(created, &summary.UsersCreated)
	}

	for _, key := range sortedKeys(document.Clients) {
		client := document.Clients[key]
		if client.ID == "" {
			client.ID = key
		}
		if client.UserID == "" {
			summary.Skipped++
			continue
		}
		created, err := createOrSkip(service.repos.Clients.Create(ctx, &client))
		if err != nil {
			return summary, fmt.Errorf("%w: client %s: %v", ErrImportFailed, key, err)
		}
		summary.count(created, &summary.ClientsCreated)
	}

	for _, key := range sortedKeys(document.Invoices) {
		invoice := document.Invoices[key]
		if invoice.ID == "" {
			invoice.ID = key
		}
		if invoice.UserID == "" {
			summary.Skipped++
			continue
		}
		if invoice.Items == nil {
			invoice.Items = []models.LineItem{}
		}
		created, err := createOrSkip(service.repos.Invoices.Create(ctx, &invoice))
		if err != nil {
			return summary, fmt.Errorf("%w: invoice %s: %v", ErrImportFailed, key, err)
		}
		summary.count(created, &summary.InvoicesCreated)
	}

	for _, userID := range sortedKeys(document.Settings) {
		imported := document.Settings[userID]
		if _, err := service.repos.Settings.Upsert(ctx, userID, func(settings *models.Settings) {
			mergeImportedSettings(settings, imported)
		}); err != nil {
			return summary, fmt.Errorf("%w: settings %s: %v", ErrImportFailed, userID, err)
		}
		summary.SettingsMerged++
	}

	return summary, nil
}

func (summary *ImportSummary) count(created bool, counter *int) {
	if created {
		*counter++
		return
	}
	summary.Skipped++
}

func createOrSkip(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrRecordDuplicate):
		return false, nil
	default:
		return false, err
	}
}

func mergeImportedSettings(settings *models.Settings, imported models.Settings) {
	SettingsPatch{
		Name:          nonEmpty(imported.Name),
		Email:         nonEmpty(imported.Email),
		Address:       nonEmpty(imported.Address),
		TaxID:         nonEmpty(imported.TaxID),
		PaymentTerms:  imported.PaymentTerms,
		Currency:      nonEmpty(imported.Currency),
		InvoicePrefix: nonEmpty(imported.InvoicePrefix),
		InvoiceNext:   imported.InvoiceNext,
		Notes:         nonEmpty(imported.Notes),
	}.Apply(settings)
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

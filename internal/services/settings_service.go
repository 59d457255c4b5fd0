package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/invoicehero/internal/models"
)

var (
	ErrLoadSettingsFailed   = errors.New("load settings failed")
	ErrUpdateSettingsFailed = errors.New("update settings failed")
)

// SettingsPatch is a shallow merge: every non-nil field replaces the stored
// value, nil fields are left alone.
type SettingsPatch struct {
	Name          *string             `json:"name"`
	Email         *string             `json:"email"`
	Address       *string             `json:"address"`
	TaxID         *string             `json:"taxId"`
	PaymentTerms  *models.FlexibleInt `json:"paymentTerms"`
	Currency      *string             `json:"currency"`
	InvoicePrefix *string             `json:"invoicePrefix"`
	InvoiceNext   *models.FlexibleInt `json:"invoiceNext"`
	Notes         *string             `json:"notes"`
}

func (patch *SettingsPatch) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Name          *models.Text        `json:"name"`
		Email         *models.Text        `json:"email"`
		Address       *models.Text        `json:"address"`
		TaxID         *models.Text        `json:"taxId"`
		PaymentTerms  *models.FlexibleInt `json:"paymentTerms"`
		Currency      *models.Text        `json:"currency"`
		InvoicePrefix *models.Text        `json:"invoicePrefix"`
		InvoiceNext   *models.FlexibleInt `json:"invoiceNext"`
		Notes         *models.Text        `json:"notes"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*patch = SettingsPatch{
		Name:          models.OptionalText(decoded.Name),
		Email:         models.OptionalText(decoded.Email),
		Address:       models.OptionalText(decoded.Address),
		TaxID:         models.OptionalText(decoded.TaxID),
		PaymentTerms:  decoded.PaymentTerms,
		Currency:      models.OptionalText(decoded.Currency),
		InvoicePrefix: models.OptionalText(decoded.InvoicePrefix),
		InvoiceNext:   decoded.InvoiceNext,
		Notes:         models.OptionalText(decoded.Notes),
	}
	return nil
}

func (patch SettingsPatch) Apply(settings *models.Settings) {
	assignString(&settings.Name, patch.Name)
	assignString(&settings.Email, patch.Email)
	assignString(&settings.Address, patch.Address)
	assignString(&settings.TaxID, patch.TaxID)
	assignString(&settings.Currency, patch.Currency)
	assignString(&settings.InvoicePrefix, patch.InvoicePrefix)
	assignString(&settings.Notes, patch.Notes)
	if patch.PaymentTerms != nil {
		terms := *patch.PaymentTerms
		settings.PaymentTerms = &terms
	}
	if patch.InvoiceNext != nil {
		next := *patch.InvoiceNext
		settings.InvoiceNext = &next
	}
}

func assignString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

// EffectiveSettings is a settings record with the invoice defaults applied.
type EffectiveSettings struct {
	models.Settings
	PaymentTermsDays int
	Prefix           string
	Next             int
}

func ResolveEffectiveSettings(settings models.Settings) EffectiveSettings {
	effective := EffectiveSettings{
		Settings:         settings,
		PaymentTermsDays: models.DefaultPaymentTermsDays,
		Prefix:           models.DefaultInvoicePrefix,
		Next:             models.DefaultInvoiceNext,
	}
	if settings.PaymentTerms != nil && settings.PaymentTerms.Int() > 0 {
		effective.PaymentTermsDays = settings.PaymentTerms.Int()
	}
	if settings.InvoicePrefix != "" {
		effective.Prefix = settings.InvoicePrefix
	}
	if settings.InvoiceNext != nil && settings.InvoiceNext.Int() > 0 {
		effective.Next = settings.InvoiceNext.Int()
	}
	return effective
}

// NextInvoiceNumber suggests prefix+counter. The counter is never advanced by
// the server.
func (effective EffectiveSettings) NextInvoiceNumber() string {
	return effective.Prefix + strconv.Itoa(effective.Next)
}

// DueDateFrom returns the date payment terms after issued, as YYYY-MM-DD.
func (effective EffectiveSettings) DueDateFrom(issued time.Time) string {
	return issued.AddDate(0, 0, effective.PaymentTermsDays).Format(time.DateOnly)
}

type InvoiceSuggestion struct {
	Number  string `json:"number"`
	DueDate string `json:"dueDate"`
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the stored settings, or an empty record when none exist.
func (service *SettingsService) Get(ctx context.Context, userID string) (settings models.Settings, err error) {
	ctx, span := startSpan(ctx, "SettingsService.Get", userID)
	defer func() { finishSpan(span, err) }()

	settings, err = service.settings.FindByUser(ctx, userID)
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		return models.Settings{UserID: userID}, nil
	case err != nil:
		return models.Settings{}, fmt.Errorf("%w: %v", ErrLoadSettingsFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) Update(ctx context.Context, userID string, patch SettingsPatch) (settings models.Settings, err error) {
	ctx, span := startSpan(ctx, "SettingsService.Update", userID)
	defer func() { finishSpan(span, err) }()

	settings, err = service.settings.Upsert(ctx, userID, patch.Apply)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrUpdateSettingsFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) Effective(ctx context.Context, userID string) (EffectiveSettings, error) {
	settings, err := service.Get(ctx, userID)
	if err != nil {
		return EffectiveSettings{}, err
	}
	return ResolveEffectiveSettings(settings), nil
}

func (service *SettingsService) Suggest(ctx context.Context, userID string, now time.Time) (InvoiceSuggestion, error) {
	effective, err := service.Effective(ctx, userID)
	if err != nil {
		return InvoiceSuggestion{}, err
	}
	return InvoiceSuggestion{
		Number:  effective.NextInvoiceNumber(),
		DueDate: effective.DueDateFrom(now),
	}, nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

package models

import "encoding/json"

const (
	DefaultPaymentTermsDays = 30
	DefaultInvoicePrefix    = "INV-"
	DefaultInvoiceNext      = 1001
)

// Settings holds the per-user business profile. Unset fields are omitted so
// that a user without settings reads back as an empty object.
type Settings struct {
	UserID        string       `json:"-" gorm:"primaryKey"`
	Name          string       `json:"name,omitempty"`
	Email         string       `json:"email,omitempty"`
	Address       string       `json:"address,omitempty"`
	TaxID         string       `json:"taxId,omitempty"`
	PaymentTerms  *FlexibleInt `json:"paymentTerms,omitempty"`
	Currency      string       `json:"currency,omitempty"`
	InvoicePrefix string       `json:"invoicePrefix,omitempty"`
	InvoiceNext   *FlexibleInt `json:"invoiceNext,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

func (Settings) TableName() string {
	return "settings"
}

// UnmarshalJSON keeps the record's UserID, which is not part of the JSON
// layout.
func (settings *Settings) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Name          Text         `json:"name"`
		Email         Text         `json:"email"`
		Address       Text         `json:"address"`
		TaxID         Text         `json:"taxId"`
		PaymentTerms  *FlexibleInt `json:"paymentTerms"`
		Currency      Text         `json:"currency"`
		InvoicePrefix Text         `json:"invoicePrefix"`
		InvoiceNext   *FlexibleInt `json:"invoiceNext"`
		Notes         Text         `json:"notes"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*settings = Settings{
		UserID:        settings.UserID,
		Name:          decoded.Name.String(),
		Email:         decoded.Email.String(),
		Address:       decoded.Address.String(),
		TaxID:         decoded.TaxID.String(),
		PaymentTerms:  decoded.PaymentTerms,
		Currency:      decoded.Currency.String(),
		InvoicePrefix: decoded.InvoicePrefix.String(),
		InvoiceNext:   decoded.InvoiceNext,
		Notes:         decoded.Notes.String(),
	}
	return nil
}

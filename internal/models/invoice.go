package models

import (
	"encoding/json"
	"time"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	// InvoiceStatusOverdue is only ever derived at read time.
	InvoiceStatusOverdue = "overdue"
)

type LineItem struct {
	Description string `json:"description"`
	Qty         Amount `json:"qty"`
	Price       Amount `json:"price"`
}

func (item *LineItem) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Description Text   `json:"description"`
		Qty         Amount `json:"qty"`
		Price       Amount `json:"price"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*item = LineItem{
		Description: decoded.Description.String(),
		Qty:         decoded.Qty,
		Price:       decoded.Price,
	}
	return nil
}

func (item LineItem) Total() Amount {
	return Amount(item.Qty.Decimal().Mul(item.Price.Decimal()).InexactFloat64())
}

type Invoice struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"userId" gorm:"index;not null"`
	ClientID  string     `json:"clientId"`
	Number    string     `json:"number"`
	Items     []LineItem `json:"items" gorm:"serializer:json"`
	Amount    Amount     `json:"amount"`
	DueDate   string     `json:"dueDate"`
	Notes     string     `json:"notes"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// UnmarshalJSON accepts non-string scalars in text fields, as older clients
// and db.json files carry them.
func (invoice *Invoice) UnmarshalJSON(data []byte) error {
	var decoded struct {
		ID        Text       `json:"id"`
		UserID    Text       `json:"userId"`
		ClientID  Text       `json:"clientId"`
		Number    Text       `json:"number"`
		Items     []LineItem `json:"items"`
		Amount    Amount     `json:"amount"`
		DueDate   Text       `json:"dueDate"`
		Notes     Text       `json:"notes"`
		Status    Text       `json:"status"`
		CreatedAt time.Time  `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*invoice = Invoice{
		ID:        decoded.ID.String(),
		UserID:    decoded.UserID.String(),
		ClientID:  decoded.ClientID.String(),
		Number:    decoded.Number.String(),
		Items:     decoded.Items,
		Amount:    decoded.Amount,
		DueDate:   decoded.DueDate.String(),
		Notes:     decoded.Notes.String(),
		Status:    decoded.Status.String(),
		CreatedAt: decoded.CreatedAt,
	}
	return nil
}

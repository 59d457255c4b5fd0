package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/invoicehero/internal/models"
)

var dueDateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDueDate reads a due date as the browser form and older clients send
// it. Date-only values are midnight UTC; timestamps without an offset are read
// in location.
func ParseDueDate(raw string, location *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.DateOnly, value); err == nil {
		return parsed, true
	}
	if location == nil {
		location = time.UTC
	}
	for _, layout := range dueDateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// IsInvoiceOverdue is the single definition of the derived overdue status:
// not paid and due strictly before now. An unparseable due date is never
// overdue.
func IsInvoiceOverdue(status string, dueDate string, now time.Time) bool {
	if status == models.InvoiceStatusPaid {
		return false
	}
	due, ok := ParseDueDate(dueDate, now.Location())
	return ok && due.Before(now)
}

// InvoiceDisplayStatus is the status shown to people: the stored status, or
// overdue when IsInvoiceOverdue holds.
func InvoiceDisplayStatus(invoice models.Invoice, now time.Time) string {
	if IsInvoiceOverdue(invoice.Status, invoice.DueDate, now) {
		return models.InvoiceStatusOverdue
	}
	if strings.TrimSpace(invoice.Status) == "" {
		return models.InvoiceStatusPending
	}
	return invoice.Status
}

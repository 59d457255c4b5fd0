package services

import (
	"context"

	"github.com/terraincognita07/invoicehero/internal/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type ClientRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Client, error)
	FindByIDForUser(ctx context.Context, clientID string, userID string) (models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	DeleteForUser(ctx context.Context, clientID string, userID string) error
}

type InvoiceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Invoice, error)
	FindByIDForUser(ctx context.Context, invoiceID string, userID string) (models.Invoice, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	UpdateForUser(ctx context.Context, invoiceID string, userID string, apply func(*models.Invoice)) (models.Invoice, error)
	DeleteForUser(ctx context.Context, invoiceID string, userID string) error
}

type SettingsRepository interface {
	FindByUser(ctx context.Context, userID string) (models.Settings, error)
	Upsert(ctx context.Context, userID string, apply func(*models.Settings)) (models.Settings, error)
}

// Repositories is the storage backend the services run on. Both the sqlite
// and the JSON document backends provide one.
type Repositories struct {
	Users    UserRepository
	Clients  ClientRepository
	Invoices InvoiceRepository
	Settings SettingsRepository
}

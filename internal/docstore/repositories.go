package docstore

import (
	"context"
	"slices"
	"sort"

	"github.com/terraincognita07/invoicehero/internal/models"
)

type Repositories struct {
	Users    *UserRepository
	Clients  *ClientRepository
	Invoices *InvoiceRepository
	Settings *SettingsRepository
}

func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Users:    &UserRepository{store: store},
		Clients:  &ClientRepository{store: store},
		Invoices: &InvoiceRepository{store: store},
		Settings: &SettingsRepository{store: store},
	}
}

type UserRepository struct {
	store *Store
}

func (repo *UserRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	var (
		user  models.User
		found bool
	)
	repo.store.read(func(document *models.Document) {
		user, found = document.Users[userID]
	})
	if !found {
		return models.User{}, models.ErrRecordNotFound
	}
	return user, nil
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.store.mutate(func(document *models.Document) error {
		if _, exists := document.Users[user.ID]; exists {
			return models.ErrRecordDuplicate
		}
		document.Users[user.ID] = *user
		return nil
	})
}

type ClientRepository struct {
	store *Store
}

func (repo *ClientRepository) ListByUser(ctx context.Context, userID string) ([]models.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clients := make([]models.Client, 0)
	repo.store.read(func(document *models.Document) {
		for _, client := range document.Clients {
			if client.UserID == userID {
				clients = append(clients, client)
			}
		}
	})
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].CreatedAt.Equal(clients[j].CreatedAt) {
			return clients[i].ID < clients[j].ID
		}
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})
	return clients, nil
}

func (repo *ClientRepository) FindByIDForUser(ctx context.Context, clientID string, userID string) (models.Client, error) {
	if err := ctx.Err(); err != nil {
		return models.Client{}, err
	}
	var (
		client models.Client
		found  bool
	)
	repo.store.read(func(document *models.Document) {
		client, found = document.Clients[clientID]
	})
	if !found || client.UserID != userID {
		return models.Client{}, models.ErrRecordNotFound
	}
	return client, nil
}

func (repo *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.store.mutate(func(document *models.Document) error {
		if _, exists := document.Clients[client.ID]; exists {
			return models.ErrRecordDuplicate
		}
		document.Clients[client.ID] = *client
		return nil
	})
}

func (repo *ClientRepository) DeleteForUser(ctx context.Context, clientID string, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.store.mutate(func(document *models.Document) error {
		client, exists := document.Clients[clientID]
		if !exists || client.UserID != userID {
			return models.ErrRecordNotFound
		}
		delete(document.Clients, clientID)
		return nil
	})
}

type InvoiceRepository struct {
	store *Store
}

func (repo *InvoiceRepository) ListByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	invoices := make([]models.Invoice, 0)
	repo.store.read(func(document *models.Document) {
		for _, invoice := range document.Invoices {
			if invoice.UserID == userID {
				invoices = append(invoices, cloneInvoice(invoice))
			}
		}
	})
	sort.Slice(invoices, func(i, j int) bool {
		if invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].ID < invoices[j].ID
		}
		return invoices[i].CreatedAt.Before(invoices[j].CreatedAt)
	})
	return invoices, nil
}

func (repo *InvoiceRepository) FindByIDForUser(ctx context.Context, invoiceID string, userID string) (models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return models.Invoice{}, err
	}
	var (
		invoice models.Invoice
		found   bool
	)
	repo.store.read(func(document *models.Document) {
		invoice, found = document.Invoices[invoiceID]
		invoice = cloneInvoice(invoice)
	})
	if !found || invoice.UserID != userID {
		return models.Invoice{}, models.ErrRecordNotFound
	}
	return invoice, nil
}

func (repo *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.store.mutate(func(document *models.Document) error {
		if _, exists := document.Invoices[invoice.ID]; exists {
			return models.ErrRecordDuplicate
		}
		document.Invoices[invoice.ID] = cloneInvoice(*invoice)
		return nil
	})
}

func (repo *InvoiceRepository) UpdateForUser(ctx context.Context, invoiceID string, userID string, apply func(*models.Invoice)) (models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return models.Invoice{}, err
	}
	var updated models.Invoice
	err := repo.store.mutate(func(document *models.Document) error {
		current, exists := document.Invoices[invoiceID]
		if !exists || current.UserID != userID {
			return models.ErrRecordNotFound
		}
		current = cloneInvoice(current)
		apply(&current)
		current.ID = invoiceID
		current.UserID = userID
		document.Invoices[invoiceID] = current
		updated = cloneInvoice(current)
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return updated, nil
}

func (repo *InvoiceRepository) DeleteForUser(ctx context.Context, invoiceID string, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.store.mutate(func(document *models.Document) error {
		invoice, exists := document.Invoices[invoiceID]
		if !exists || invoice.UserID != userID {
			return models.ErrRecordNotFound
		}
		delete(document.Invoices, invoiceID)
		return nil
	})
}

type SettingsRepository struct {
	store *Store
}

func (repo *SettingsRepository) FindByUser(ctx context.Context, userID string) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	var (
		settings models.Settings
		found    bool
	)
	repo.store.read(func(document *models.Document) {
		settings, found = document.Settings[userID]
	})
	if !found {
		return models.Settings{}, models.ErrRecordNotFound
	}
	settings.UserID = userID
	return settings, nil
}

func (repo *SettingsRepository) Upsert(ctx context.Context, userID string, apply func(*models.Settings)) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	var merged models.Settings
	err := repo.store.mutate(func(document *models.Document) error {
		current := document.Settings[userID]
		apply(&current)
		current.UserID = userID
		document.Settings[userID] = current
		merged = current
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return merged, nil
}

func cloneInvoice(invoice models.Invoice) models.Invoice {
	invoice.Items = slices.Clone(invoice.Items)
	return invoice
}

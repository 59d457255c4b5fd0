package db

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/invoicehero/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	Users    *UserRepository
	Clients  *ClientRepository
	Invoices *InvoiceRepository
	Settings *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Clients:  NewClientRepository(database),
		Invoices: NewInvoiceRepository(database),
		Settings: NewSettingsRepository(database),
	}
}

// translateError maps gorm errors onto the storage-neutral sentinels in models
// so callers never depend on the backend.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", models.ErrRecordNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", models.ErrRecordDuplicate, err)
	default:
		return err
	}
}

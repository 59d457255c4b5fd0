package db

import (
	"context"

	"github.com/terraincognita07/invoicehero/internal/models"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	database *gorm.DB
}

func NewInvoiceRepository(database *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{database: database}
}

func (repo *InvoiceRepository) ListByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (repo *InvoiceRepository) FindByIDForUser(ctx context.Context, invoiceID string, userID string) (models.Invoice, error) {
	var invoice models.Invoice
	if err := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", invoiceID, userID).
		First(&invoice).Error; err != nil {
		return models.Invoice{}, translateError(err)
	}
	return invoice, nil
}

func (repo *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return translateError(repo.database.WithContext(ctx).Create(invoice).Error)
}

// UpdateForUser loads the owned invoice, lets apply mutate it and saves the
// result inside one transaction.
func (repo *InvoiceRepository) UpdateForUser(ctx context.Context, invoiceID string, userID string, apply func(*models.Invoice)) (models.Invoice, error) {
	var invoice models.Invoice
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", invoiceID, userID).First(&invoice).Error; err != nil {
			return err
		}
		apply(&invoice)
		invoice.ID = invoiceID
		invoice.UserID = userID
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return models.Invoice{}, translateError(err)
	}
	return invoice, nil
}

func (repo *InvoiceRepository) DeleteForUser(ctx context.Context, invoiceID string, userID string) error {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", invoiceID, userID).
		Delete(&models.Invoice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

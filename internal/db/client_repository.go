package db

import (
	"context"

	"github.com/terraincognita07/invoicehero/internal/models"
	"gorm.io/gorm"
)

type ClientRepository struct {
	database *gorm.DB
}

func NewClientRepository(database *gorm.DB) *ClientRepository {
	return &ClientRepository{database: database}
}

func (repo *ClientRepository) ListByUser(ctx context.Context, userID string) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (repo *ClientRepository) FindByIDForUser(ctx context.Context, clientID string, userID string) (models.Client, error) {
	var client models.Client
	if err := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		First(&client).Error; err != nil {
		return models.Client{}, translateError(err)
	}
	return client, nil
}

func (repo *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	return translateError(repo.database.WithContext(ctx).Create(client).Error)
}

func (repo *ClientRepository) DeleteForUser(ctx context.Context, clientID string, userID string) error {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		Delete(&models.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

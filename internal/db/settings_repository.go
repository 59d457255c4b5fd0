package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/invoicehero/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) FindByUser(ctx context.Context, userID string) (models.Settings, error) {
	var settings models.Settings
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return models.Settings{}, translateError(err)
	}
	return settings, nil
}

func (repo *SettingsRepository) Upsert(ctx context.Context, userID string, apply func(*models.Settings)) (models.Settings, error) {
	var settings models.Settings
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&settings).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			settings = models.Settings{UserID: userID}
			apply(&settings)
			settings.UserID = userID
			return tx.Create(&settings).Error
		case err != nil:
			return err
		}
		apply(&settings)
		settings.UserID = userID
		return tx.Save(&settings).Error
	})
	if err != nil {
		return models.Settings{}, translateError(err)
	}
	return settings, nil
}

package db

import (
	"context"

	"github.com/terraincognita07/invoicehero/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, translateError(err)
	}
	return user, nil
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(repo.database.WithContext(ctx).Create(user).Error)
}

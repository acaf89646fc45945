package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// SettingsRepository manages the single global settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository instantiates a GORM-backed repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lifeflow/internal/model"
)

// SettingsRepository persists the single application settings row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the settings row, creating it with defaults on first use.
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	db := r.db.WithContext(ctx)
	err := db.First(&settings).Error
	switch {
	case err == nil:
		return &settings, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings = model.Settings{
			CompletionThresholdLow:  50,
			CompletionThresholdHigh: 100,
			MinimumDataDays:         3,
			ShowAlerts:              true,
		}
		if err := db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return &settings, nil
	default:
		return nil, fmt.Errorf("find settings: %w", err)
	}
}

func (r *SettingsRepository) Update(ctx context.Context, settings *model.Settings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

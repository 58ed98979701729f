package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/radwerk/intake-api/internal/domain"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// LoadAll returns every persisted setting.
func (r *SettingsRepository) LoadAll(ctx context.Context) ([]domain.Setting, error) {
	var settings []domain.Setting
	err := r.db.WithContext(ctx).Find(&settings).Error
	return settings, err
}

// Upsert writes one key/value pair, inserting or overwriting.
func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	setting := domain.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// Delete removes one key. Missing keys are not an error.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&domain.Setting{}, "key = ?", key).Error
}

// Clear removes all settings.
func (r *SettingsRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Setting{}).Error
}

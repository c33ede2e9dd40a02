// internal/store/postgres/settings_store.go
package postgres

import (
	"gorm.io/gorm"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

type SettingsStore struct {
	db *gorm.DB
}

func (s *SettingsStore) Get() (*models.Settings, error) {
	var settings models.Settings
	if err := s.db.Where("id = ?", models.SettingsID).First(&settings).Error; err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (s *SettingsStore) Create(settings *models.Settings) error {
	settings.ID = models.SettingsID
	return s.db.Create(settings).Error
}

func (s *SettingsStore) UpdateFields(fields map[string]interface{}) error {
	result := s.db.Model(&models.Settings{}).Where("id = ?", models.SettingsID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

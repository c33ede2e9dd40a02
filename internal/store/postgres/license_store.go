// internal/store/postgres/license_store.go
package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

type LicenseStore struct {
	db *gorm.DB
}

func (s *LicenseStore) FindByID(id uuid.UUID) (*models.License, error) {
	var license models.License
	if err := s.db.Where("id = ?", id).First(&license).Error; err != nil {
		return nil, translate(err)
	}
	return &license, nil
}

func (s *LicenseStore) FindByKey(licenseKey string) (*models.License, error) {
	var license models.License
	if err := s.db.Where("license_key = ?", licenseKey).First(&license).Error; err != nil {
		return nil, translate(err)
	}
	return &license, nil
}

func (s *LicenseStore) List(opts store.ListOptions) ([]models.License, error) {
	var licenses []models.License
	if err := paginate(s.db.Order("created_at DESC"), opts).Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

func (s *LicenseStore) ListByUser(userID uuid.UUID, opts store.ListOptions) ([]models.License, error) {
	var licenses []models.License
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if err := paginate(query, opts).Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

func (s *LicenseStore) Create(license *models.License) error {
	return s.db.Create(license).Error
}

func (s *LicenseStore) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.License{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *LicenseStore) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.License{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *LicenseStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.License{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *LicenseStore) CountByStatus(status models.LicenseStatus) (int64, error) {
	var count int64
	if err := s.db.Model(&models.License{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *LicenseStore) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.License{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// internal/store/postgres/product_store.go
package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

type ProductStore struct {
	db *gorm.DB
}

func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *ProductStore) List(opts store.ListOptions) ([]models.Product, error) {
	var products []models.Product
	if err := paginate(s.db.Order("created_at DESC"), opts).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStore) Create(product *models.Product) error {
	return s.db.Create(product).Error
}

func (s *ProductStore) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

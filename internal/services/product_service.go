// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/utils"
)

type ProductService struct {
	products store.ProductStore
}

type ProductRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

func NewProductService(products store.ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	products, err := s.products.List(params.ListOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.products.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *ProductService) Create(req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Invalid product data")
	}

	version := req.Version
	if version == "" {
		version = "1.0.0"
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Version:     version,
	}

	if err := s.products.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Invalid product data")
	}

	if _, err := s.products.FindByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	fields := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"updated_at":  time.Now().UTC(),
	}
	if req.Version != "" {
		fields["version"] = req.Version
	}

	if err := s.products.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return product, nil
}

// Delete is unconditional: licenses referencing the product are left in place
// and will fail verification with a product mismatch.
func (s *ProductService) Delete(id uuid.UUID) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Product")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

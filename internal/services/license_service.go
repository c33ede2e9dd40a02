// internal/services/license_service.go
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

type LicenseService struct {
	licenses store.LicenseStore
	products store.ProductStore
	users    store.UserStore
}

type CreateLicenseRequest struct {
	ClientName     string    `json:"client_name" validate:"required"`
	Domain         string    `json:"domain" validate:"required"`
	ProductID      uuid.UUID `json:"product_id" validate:"required"`
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
	Status         string    `json:"status,omitempty" validate:"omitempty,license_status"`
}

// UpdateLicenseRequest applies only the fields present. The license key is
// not updatable by design.
type UpdateLicenseRequest struct {
	ClientName     *string    `json:"client_name,omitempty"`
	Domain         *string    `json:"domain,omitempty"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,license_status"`
}

func NewLicenseService(licenses store.LicenseStore, products store.ProductStore, users store.UserStore) *LicenseService {
	return &LicenseService{
		licenses: licenses,
		products: products,
		users:    users,
	}
}

// ListForUser is ownership-scoped: admins see every license, everyone else
// sees only their own.
func (s *LicenseService) ListForUser(caller *models.User, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var (
		licenses []models.License
		total    int64
		err      error
	)

	if caller.IsAdmin() {
		licenses, err = s.licenses.List(params.ListOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to list licenses: %w", err)
		}
		total, err = s.licenses.Count()
	} else {
		licenses, err = s.licenses.ListByUser(caller.ID, params.ListOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to list licenses: %w", err)
		}
		total, err = s.licenses.CountByUser(caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count licenses: %w", err)
	}

	result := utils.CreatePaginationResult(licenses, total, params)
	return &result, nil
}

func (s *LicenseService) Create(req *CreateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Invalid license data")
	}

	// Referential checks come before any write
	if _, err := s.products.FindByID(req.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	if _, err := s.users.FindByID(req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	licenseKey, err := utils.GenerateLicenseKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate license key: %w", err)
	}

	status := models.LicenseStatus(req.Status)
	if status == "" {
		status = models.LicenseStatusActive
	}

	license := &models.License{
		LicenseKey:     licenseKey,
		ClientName:     req.ClientName,
		Domain:         req.Domain,
		ProductID:      req.ProductID,
		UserID:         req.UserID,
		ExpirationDate: req.ExpirationDate.UTC(),
		Status:         status,
	}

	if err := s.licenses.Create(license); err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	return license, nil
}

func (s *LicenseService) Update(id uuid.UUID, req *UpdateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Invalid license data")
	}

	if _, err := s.licenses.FindByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("License")
		}
		return nil, fmt.Errorf("failed to resolve license: %w", err)
	}

	fields := map[string]interface{}{}
	if req.ClientName != nil {
		fields["client_name"] = *req.ClientName
	}
	if req.Domain != nil {
		fields["domain"] = *req.Domain
	}
	if req.ProductID != nil {
		fields["product_id"] = *req.ProductID
	}
	if req.ExpirationDate != nil {
		fields["expiration_date"] = req.ExpirationDate.UTC()
	}
	if req.Status != nil {
		fields["status"] = models.LicenseStatus(*req.Status)
	}

	// updated_at is refreshed even for an empty patch
	fields["updated_at"] = time.Now().UTC()

	if err := s.licenses.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	license, err := s.licenses.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload license: %w", err)
	}
	return license, nil
}

func (s *LicenseService) Delete(id uuid.UUID) error {
	if err := s.licenses.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("License")
		}
		return fmt.Errorf("failed to delete license: %w", err)
	}
	return nil
}

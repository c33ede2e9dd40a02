// internal/services/verification_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

// VerificationService answers "is this license key valid for this domain and
// product" for untrusted client software. It is stateless: every verdict is
// made from a fresh read, and the only write it ever performs is the lazy
// active-to-expired transition.
type VerificationService struct {
	licenses store.LicenseStore
	products store.ProductStore
}

type VerifyRequest struct {
	LicenseKey  string `json:"license_key" validate:"required"`
	Domain      string `json:"domain" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
}

type VerifyResponse struct {
	Valid       bool         `json:"valid"`
	Message     string       `json:"message"`
	LicenseData *LicenseData `json:"license_data,omitempty"`
}

// LicenseData is the minimal projection disclosed on a valid verdict. The
// license key, owner id, and internal timestamps are deliberately withheld.
type LicenseData struct {
	ClientName     string    `json:"client_name"`
	ExpirationDate time.Time `json:"expiration_date"`
	ProductID      uuid.UUID `json:"product_id"`
}

func NewVerificationService(licenses store.LicenseStore, products store.ProductStore) *VerificationService {
	return &VerificationService{
		licenses: licenses,
		products: products,
	}
}

// Verify runs the checks in strict order and short-circuits on the first
// failure, so a caller learns the category of failure but nothing about other
// licenses. Returns an error only for store faults; every domain outcome is a
// verdict.
func (s *VerificationService) Verify(req *VerifyRequest) (*VerifyResponse, error) {
	// 1. Look up the license by exact key equality
	license, err := s.licenses.FindByKey(req.LicenseKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("Invalid license key"), nil
		}
		return nil, fmt.Errorf("license lookup failed: %w", err)
	}

	// 2. Exact domain match. No case folding, no subdomain matching.
	if license.Domain != req.Domain {
		return invalid("Domain mismatch"), nil
	}

	// 3. The product must still exist and carry the claimed name. An orphaned
	// license (product deleted) fails here with the same message.
	product, err := s.products.FindByID(license.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("Product mismatch"), nil
		}
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if product.Name != req.ProductName {
		return invalid("Product mismatch"), nil
	}

	// 4. Lifecycle state
	if license.Status != models.LicenseStatusActive {
		return invalid(fmt.Sprintf("License is %s", license.Status)), nil
	}

	// 5. Expiration. Crossing the boundary flips the stored status to expired;
	// the write is best-effort and idempotent, so a failed or raced update just
	// means the next verification short-circuits at step 4 instead.
	if license.ExpirationDate.Before(time.Now().UTC()) {
		if err := s.licenses.UpdateFields(license.ID, map[string]interface{}{
			"status": models.LicenseStatusExpired,
		}); err != nil {
			logrus.WithError(err).WithField("license_id", license.ID).Warn("Failed to persist license expiry")
		}
		return invalid("License has expired"), nil
	}

	return &VerifyResponse{
		Valid:   true,
		Message: "License is valid",
		LicenseData: &LicenseData{
			ClientName:     license.ClientName,
			ExpirationDate: license.ExpirationDate,
			ProductID:      license.ProductID,
		},
	}, nil
}

func invalid(message string) *VerifyResponse {
	return &VerifyResponse{
		Valid:   false,
		Message: message,
	}
}

// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/utils"
)

type SettingsService struct {
	settings store.SettingsStore
}

type UpdateSettingsRequest struct {
	SiteName           *string `json:"site_name,omitempty"`
	PaymentAccessToken *string `json:"payment_access_token,omitempty"`
	PaymentPublicKey   *string `json:"payment_public_key,omitempty"`
	EnablePayments     *bool   `json:"enable_payments,omitempty"`
}

func NewSettingsService(settings store.SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the singleton settings record, creating it with defaults on
// first read.
func (s *SettingsService) Get() (*models.Settings, error) {
	settings, err := s.settings.Get()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	defaults := models.DefaultSettings()
	if err := s.settings.Create(defaults); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return defaults, nil
}

func (s *SettingsService) Update(req *UpdateSettingsRequest) (*models.Settings, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Ensure the record exists before a partial update
	if _, err := s.Get(); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.SiteName != nil {
		fields["site_name"] = *req.SiteName
	}
	if req.PaymentAccessToken != nil {
		fields["payment_access_token"] = *req.PaymentAccessToken
	}
	if req.PaymentPublicKey != nil {
		fields["payment_public_key"] = *req.PaymentPublicKey
	}
	if req.EnablePayments != nil {
		fields["enable_payments"] = *req.EnablePayments
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.settings.UpdateFields(fields); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return s.settings.Get()
}

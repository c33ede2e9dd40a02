// internal/services/payment_service_test.go
package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/store/memory"
)

func preferenceRequest(productID uuid.UUID) *CreatePreferenceRequest {
	return &CreatePreferenceRequest{
		Title:     "Widget License",
		Amount:    49.99,
		ProductID: productID,
		LicenseID: uuid.New(),
	}
}

func TestCreatePreferencePaymentsDisabled(t *testing.T) {
	stores := memory.New()
	service := NewPaymentService(stores.Settings, stores.Products, testConfig())

	// No settings record at all
	_, err := service.CreatePreference(uuid.New(), preferenceRequest(uuid.New()))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Payments are not enabled", appErr.Message)

	// Settings exist but payments stay off
	settingsService := NewSettingsService(stores.Settings)
	_, err = settingsService.Get()
	require.NoError(t, err)

	_, err = service.CreatePreference(uuid.New(), preferenceRequest(uuid.New()))
	require.Error(t, err)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Payments are not enabled", appErr.Message)
}

func TestCreatePreferenceProviderNotConfigured(t *testing.T) {
	stores := memory.New()
	service := NewPaymentService(stores.Settings, stores.Products, testConfig())
	settingsService := NewSettingsService(stores.Settings)

	enable := true
	_, err := settingsService.Update(&UpdateSettingsRequest{EnablePayments: &enable})
	require.NoError(t, err)

	_, err = service.CreatePreference(uuid.New(), preferenceRequest(uuid.New()))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Payment provider is not configured", appErr.Message)
}

func TestCreatePreferenceUnknownProduct(t *testing.T) {
	stores := memory.New()
	service := NewPaymentService(stores.Settings, stores.Products, testConfig())
	settingsService := NewSettingsService(stores.Settings)

	enable := true
	token := "sk_test_123"
	_, err := settingsService.Update(&UpdateSettingsRequest{
		EnablePayments:     &enable,
		PaymentAccessToken: &token,
	})
	require.NoError(t, err)

	_, err = service.CreatePreference(uuid.New(), preferenceRequest(uuid.New()))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestHandleWebhookNeverPanics(t *testing.T) {
	stores := memory.New()
	service := NewPaymentService(stores.Settings, stores.Products, testConfig())

	assert.NotPanics(t, func() {
		service.HandleWebhook(map[string]interface{}{})
		service.HandleWebhook(map[string]interface{}{"type": "payment"})
		service.HandleWebhook(map[string]interface{}{
			"type": "payment",
			"data": map[string]interface{}{
				"object": map[string]interface{}{"id": "pay_123"},
			},
		})
		service.HandleWebhook(map[string]interface{}{
			"type": "payment",
			"data": "not-an-object",
		})
	})
}

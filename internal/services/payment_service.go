// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/keyward/keyward-backend/internal/apperrors"
	"github.com/keyward/keyward-backend/internal/config"
	"github.com/keyward/keyward-backend/internal/store"
)

// PaymentService creates checkout preferences with the provider credentials
// stored in the settings record, so admins can configure payments at runtime.
type PaymentService struct {
	settings store.SettingsStore
	products store.ProductStore
	cfg      *config.Config
}

type CreatePreferenceRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	LicenseID   uuid.UUID `json:"license_id" validate:"required"`
}

type PreferenceResponse struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

func NewPaymentService(settings store.SettingsStore, products store.ProductStore, cfg *config.Config) *PaymentService {
	return &PaymentService{
		settings: settings,
		products: products,
		cfg:      cfg,
	}
}

func (s *PaymentService) CreatePreference(userID uuid.UUID, req *CreatePreferenceRequest) (*PreferenceResponse, error) {
	settings, err := s.settings.Get()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Validation("Payments are not enabled")
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if !settings.EnablePayments {
		return nil, apperrors.Validation("Payments are not enabled")
	}
	if settings.PaymentAccessToken == "" {
		return nil, apperrors.Validation("Payment provider is not configured")
	}

	product, err := s.products.FindByID(req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	stripe.Key = settings.PaymentAccessToken

	// Convert amount to cents for the provider
	amountInCents := int64(req.Amount * 100)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.Frontend.BaseURL + "/payment/success"),
		CancelURL:         stripe.String(s.cfg.Frontend.BaseURL + "/payment/failure"),
		ClientReferenceID: stripe.String(fmt.Sprintf("%s_%s", req.LicenseID, req.ProductID)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amountInCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Title),
						Description: stripe.String(req.Description),
					},
				},
			},
		},
	}
	params.AddMetadata("license_id", req.LicenseID.String())
	params.AddMetadata("product_id", product.ID.String())
	params.AddMetadata("user_id", userID.String())

	sess, err := session.New(params)
	if err != nil {
		return nil, apperrors.External("Failed to create payment preference", err)
	}

	return &PreferenceResponse{
		PreferenceID: sess.ID,
		InitPoint:    sess.URL,
	}, nil
}

// HandleWebhook acknowledges every payload. Processing failures are logged,
// never propagated, because the provider retries indefinitely otherwise.
func (s *PaymentService) HandleWebhook(payload map[string]interface{}) {
	eventType, _ := payload["type"].(string)
	logrus.WithField("type", eventType).Info("Payment webhook received")

	if eventType == "" {
		logrus.Warn("Payment webhook without a type field")
		return
	}

	if data, ok := payload["data"].(map[string]interface{}); ok {
		if object, ok := data["object"].(map[string]interface{}); ok {
			if id, ok := object["id"].(string); ok {
				logrus.WithFields(logrus.Fields{
					"type": eventType,
					"id":   id,
				}).Info("Payment notification received")
			}
		}
	}
}

// internal/handlers/verification_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/services"
	"github.com/keyward/keyward-backend/internal/store"
	"github.com/keyward/keyward-backend/internal/store/memory"
)

func setupVerifyRouter(t *testing.T) (*gin.Engine, *store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := memory.New()
	handler := NewVerificationHandler(services.NewVerificationService(stores.Licenses, stores.Products))

	router := gin.New()
	router.POST("/v1/verify", handler.Verify)
	return router, stores
}

func postVerify(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch v := body.(type) {
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestVerifyEndpointAlwaysAnswers200(t *testing.T) {
	router, _ := setupVerifyRouter(t)

	cases := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"malformed body", `{"license_key": `, "Invalid request"},
		{"empty body falls through to the key lookup", `{}`, "Invalid license key"},
		{"unknown key", services.VerifyRequest{
			LicenseKey:  "lic_doesnotexist",
			Domain:      "acme.io",
			ProductName: "Widget",
		}, "Invalid license key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := postVerify(t, router, tc.body)
			assert.Equal(t, http.StatusOK, recorder.Code)

			var resp services.VerifyResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.False(t, resp.Valid)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestVerifyEndpointEndToEnd(t *testing.T) {
	router, stores := setupVerifyRouter(t)

	product := &models.Product{Name: "Widget", Version: "1.0.0"}
	require.NoError(t, stores.Products.Create(product))

	owner := &models.User{Email: "owner@example.com", Role: models.UserRoleUser}
	require.NoError(t, owner.SetPassword("secret123"))
	require.NoError(t, stores.Users.Create(owner))

	expiration := time.Now().UTC().Add(30 * 24 * time.Hour)
	license := &models.License{
		LicenseKey:     "lic_e2e00000000000000000000000000000",
		ClientName:     "Acme Corp",
		Domain:         "acme.io",
		ProductID:      product.ID,
		UserID:         owner.ID,
		ExpirationDate: expiration,
		Status:         models.LicenseStatusActive,
	}
	require.NoError(t, stores.Licenses.Create(license))

	recorder := postVerify(t, router, services.VerifyRequest{
		LicenseKey:  license.LicenseKey,
		Domain:      "acme.io",
		ProductName: "Widget",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp services.VerifyResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "License is valid", resp.Message)
	require.NotNil(t, resp.LicenseData)
	assert.Equal(t, "Acme Corp", resp.LicenseData.ClientName)
	assert.Equal(t, product.ID, resp.LicenseData.ProductID)
	assert.WithinDuration(t, expiration, resp.LicenseData.ExpirationDate, time.Second)

	// The verdict body carries no envelope and no owner or key material
	raw := recorder.Body.String()
	assert.NotContains(t, raw, "success")
	assert.NotContains(t, raw, license.LicenseKey)
	assert.NotContains(t, raw, owner.ID.String())
}

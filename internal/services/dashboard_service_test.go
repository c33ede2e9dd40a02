// internal/services/dashboard_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store/memory"
)

func TestDashboardStats(t *testing.T) {
	stores := memory.New()
	service := NewDashboardService(stores.Licenses, stores.Products, stores.Users)

	product := seedProduct(t, stores, "Widget")
	seedProduct(t, stores, "Gadget")
	owner := seedUser(t, stores, "owner@x.com", models.UserRoleUser)
	seedUser(t, stores, "admin@x.com", models.UserRoleAdmin)

	for _, status := range []models.LicenseStatus{
		models.LicenseStatusActive,
		models.LicenseStatusActive,
		models.LicenseStatusInactive,
		models.LicenseStatusExpired,
	} {
		license := &models.License{
			LicenseKey:     "lic_" + string(status) + time.Now().Format("150405.000000000"),
			ClientName:     "Client",
			Domain:         "example.com",
			ProductID:      product.ID,
			UserID:         owner.ID,
			ExpirationDate: time.Now().UTC().Add(time.Hour),
			Status:         status,
		}
		require.NoError(t, stores.Licenses.Create(license))
	}

	stats, err := service.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalLicenses)
	assert.EqualValues(t, 2, stats.ActiveLicenses)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.TotalUsers)
}

func TestDashboardStatsEmpty(t *testing.T) {
	stores := memory.New()
	service := NewDashboardService(stores.Licenses, stores.Products, stores.Users)

	stats, err := service.Stats()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalLicenses)
	assert.Zero(t, stats.ActiveLicenses)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalUsers)
}

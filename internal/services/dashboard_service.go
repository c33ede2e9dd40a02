// internal/services/dashboard_service.go
package services

import (
	"fmt"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

type DashboardService struct {
	licenses store.LicenseStore
	products store.ProductStore
	users    store.UserStore
}

type DashboardStats struct {
	TotalLicenses  int64 `json:"total_licenses"`
	ActiveLicenses int64 `json:"active_licenses"`
	TotalProducts  int64 `json:"total_products"`
	TotalUsers     int64 `json:"total_users"`
}

func NewDashboardService(licenses store.LicenseStore, products store.ProductStore, users store.UserStore) *DashboardService {
	return &DashboardService{
		licenses: licenses,
		products: products,
		users:    users,
	}
}

func (s *DashboardService) Stats() (*DashboardStats, error) {
	totalLicenses, err := s.licenses.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count licenses: %w", err)
	}

	activeLicenses, err := s.licenses.CountByStatus(models.LicenseStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active licenses: %w", err)
	}

	totalProducts, err := s.products.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalUsers, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &DashboardStats{
		TotalLicenses:  totalLicenses,
		ActiveLicenses: activeLicenses,
		TotalProducts:  totalProducts,
		TotalUsers:     totalUsers,
	}, nil
}

// internal/store/store.go

// Package store defines the repository boundary between the business logic and
// the record store. Every implementation performs atomic single-record
// operations only; nothing in the system needs a multi-record transaction.
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/keyward/keyward-backend/internal/models"
)

// ErrNotFound is returned by point lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// ListOptions carries offset pagination. A zero Limit means no cap.
type ListOptions struct {
	Offset int
	Limit  int
}

type UserStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List(opts ListOptions) ([]models.User, error)
	Create(user *models.User) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}

type ProductStore interface {
	FindByID(id uuid.UUID) (*models.Product, error)
	List(opts ListOptions) ([]models.Product, error)
	Create(product *models.Product) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}

type LicenseStore interface {
	FindByID(id uuid.UUID) (*models.License, error)
	FindByKey(licenseKey string) (*models.License, error)
	List(opts ListOptions) ([]models.License, error)
	ListByUser(userID uuid.UUID, opts ListOptions) ([]models.License, error)
	Create(license *models.License) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	CountByStatus(status models.LicenseStatus) (int64, error)
	CountByUser(userID uuid.UUID) (int64, error)
}

type SettingsStore interface {
	Get() (*models.Settings, error)
	Create(settings *models.Settings) error
	UpdateFields(fields map[string]interface{}) error
}

// Stores bundles the per-entity repositories for constructor injection.
type Stores struct {
	Users    UserStore
	Products ProductStore
	Licenses LicenseStore
	Settings SettingsStore
}

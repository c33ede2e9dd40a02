// internal/store/memory/memory.go

// Package memory implements the store interfaces with in-process maps. It
// exists for the test suites, which exercise the business logic without a
// database. Records are copied on the way in and out so callers never share
// memory with the store.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keyward/keyward-backend/internal/models"
	"github.com/keyward/keyward-backend/internal/store"
)

// New returns a fresh, empty set of in-memory repositories.
func New() *store.Stores {
	return &store.Stores{
		Users:    &UserStore{users: make(map[uuid.UUID]models.User)},
		Products: &ProductStore{products: make(map[uuid.UUID]models.Product)},
		Licenses: &LicenseStore{licenses: make(map[uuid.UUID]models.License)},
		Settings: &SettingsStore{},
	}
}

func stamp(base *models.BaseModel) {
	now := time.Now().UTC()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = now
	}
}

func clip(n int, opts store.ListOptions) (int, int) {
	start := opts.Offset
	if start > n {
		start = n
	}
	end := n
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return start, end
}

type UserStore struct {
	mtx   sync.RWMutex
	users map[uuid.UUID]models.User
}

func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) List(opts store.ListOptions) ([]models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	start, end := clip(len(users), opts)
	return users[start:end], nil
}

func (s *UserStore) Create(user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	stamp(&user.BaseModel)
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Delete(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) Count() (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return int64(len(s.users)), nil
}

type ProductStore struct {
	mtx      sync.RWMutex
	products map[uuid.UUID]models.Product
}

func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (s *ProductStore) List(opts store.ListOptions) ([]models.Product, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	start, end := clip(len(products), opts)
	return products[start:end], nil
}

func (s *ProductStore) Create(product *models.Product) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	stamp(&product.BaseModel)
	s.products[product.ID] = *product
	return nil
}

func (s *ProductStore) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	product, ok := s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "version":
			product.Version = value.(string)
		case "updated_at":
			product.UpdatedAt = value.(time.Time)
		}
	}
	s.products[id] = product
	return nil
}

func (s *ProductStore) Delete(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *ProductStore) Count() (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return int64(len(s.products)), nil
}

type LicenseStore struct {
	mtx      sync.RWMutex
	licenses map[uuid.UUID]models.License
}

func (s *LicenseStore) FindByID(id uuid.UUID) (*models.License, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	license, ok := s.licenses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &license, nil
}

func (s *LicenseStore) FindByKey(licenseKey string) (*models.License, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	for _, license := range s.licenses {
		if license.LicenseKey == licenseKey {
			l := license
			return &l, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *LicenseStore) List(opts store.ListOptions) ([]models.License, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	licenses := make([]models.License, 0, len(s.licenses))
	for _, license := range s.licenses {
		licenses = append(licenses, license)
	}
	sort.Slice(licenses, func(i, j int) bool {
		return licenses[i].CreatedAt.After(licenses[j].CreatedAt)
	})
	start, end := clip(len(licenses), opts)
	return licenses[start:end], nil
}

func (s *LicenseStore) ListByUser(userID uuid.UUID, opts store.ListOptions) ([]models.License, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	licenses := make([]models.License, 0)
	for _, license := range s.licenses {
		if license.UserID == userID {
			licenses = append(licenses, license)
		}
	}
	sort.Slice(licenses, func(i, j int) bool {
		return licenses[i].CreatedAt.After(licenses[j].CreatedAt)
	})
	start, end := clip(len(licenses), opts)
	return licenses[start:end], nil
}

func (s *LicenseStore) Create(license *models.License) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	stamp(&license.BaseModel)
	s.licenses[license.ID] = *license
	return nil
}

func (s *LicenseStore) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	license, ok := s.licenses[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "client_name":
			license.ClientName = value.(string)
		case "domain":
			license.Domain = value.(string)
		case "product_id":
			license.ProductID = value.(uuid.UUID)
		case "expiration_date":
			license.ExpirationDate = value.(time.Time)
		case "status":
			license.Status = value.(models.LicenseStatus)
		case "updated_at":
			license.UpdatedAt = value.(time.Time)
		}
	}
	s.licenses[id] = license
	return nil
}

func (s *LicenseStore) Delete(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.licenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.licenses, id)
	return nil
}

func (s *LicenseStore) Count() (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return int64(len(s.licenses)), nil
}

func (s *LicenseStore) CountByStatus(status models.LicenseStatus) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	var count int64
	for _, license := range s.licenses {
		if license.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *LicenseStore) CountByUser(userID uuid.UUID) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	var count int64
	for _, license := range s.licenses {
		if license.UserID == userID {
			count++
		}
	}
	return count, nil
}

type SettingsStore struct {
	mtx      sync.RWMutex
	settings *models.Settings
}

func (s *SettingsStore) Get() (*models.Settings, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.settings == nil {
		return nil, store.ErrNotFound
	}
	settings := *s.settings
	return &settings, nil
}

func (s *SettingsStore) Create(settings *models.Settings) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	settings.ID = models.SettingsID
	copied := *settings
	s.settings = &copied
	return nil
}

func (s *SettingsStore) UpdateFields(fields map[string]interface{}) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.settings == nil {
		return store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "site_name":
			s.settings.SiteName = value.(string)
		case "payment_access_token":
			s.settings.PaymentAccessToken = value.(string)
		case "payment_public_key":
			s.settings.PaymentPublicKey = value.(string)
		case "enable_payments":
			s.settings.EnablePayments = value.(bool)
		case "updated_at":
			s.settings.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

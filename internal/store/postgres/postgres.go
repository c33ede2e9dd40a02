// internal/store/postgres/postgres.go

// Package postgres implements the store interfaces on top of GORM.
package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/keyward/keyward-backend/internal/store"
)

// New builds the full set of repositories over one shared connection pool.
func New(db *gorm.DB) *store.Stores {
	return &store.Stores{
		Users:    &UserStore{db: db},
		Products: &ProductStore{db: db},
		Licenses: &LicenseStore{db: db},
		Settings: &SettingsStore{db: db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

func paginate(db *gorm.DB, opts store.ListOptions) *gorm.DB {
	if opts.Offset > 0 {
		db = db.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		db = db.Limit(opts.Limit)
	}
	return db
}

// internal/models/license.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// License binds a license key to a client domain and a product. The key is
// generated at creation and never mutated afterwards; verification matches
// domain and product name with exact, case-sensitive equality.
type License struct {
	BaseModel
	LicenseKey     string        `json:"license_key" gorm:"uniqueIndex;size:64;not null"`
	ClientName     string        `json:"client_name" gorm:"size:255;not null"`
	Domain         string        `json:"domain" gorm:"size:255;not null"`
	ProductID      uuid.UUID     `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ExpirationDate time.Time     `json:"expiration_date" gorm:"not null"`
	Status         LicenseStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Owner   User    `json:"owner,omitempty" gorm:"foreignKey:UserID"`
}

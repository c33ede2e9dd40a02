// internal/models/settings.go
package models

import "time"

// SettingsID is the fixed primary key of the singleton settings record.
const SettingsID = "settings"

// Settings is a singleton configuration record, lazily created with defaults
// on first read. The payment credentials live here rather than in the process
// environment so admins can rotate them without a redeploy.
type Settings struct {
	ID                 string    `json:"id" gorm:"primary_key;size:32"`
	SiteName           string    `json:"site_name" gorm:"size:255;not null;default:'License Manager'"`
	PaymentAccessToken string    `json:"payment_access_token" gorm:"size:255"`
	PaymentPublicKey   string    `json:"payment_public_key" gorm:"size:255"`
	EnablePayments     bool      `json:"enable_payments" gorm:"not null;default:false"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ID:             SettingsID,
		SiteName:       "License Manager",
		EnablePayments: false,
		UpdatedAt:      time.Now().UTC(),
	}
}

// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null;index"`
	Description string `json:"description" gorm:"type:text"`
	Version     string `json:"version" gorm:"size:50;not null;default:'1.0.0'"`
}

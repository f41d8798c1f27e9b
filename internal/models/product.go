package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Image       string          `json:"image" validate:"omitempty,max=255"` // path relative to the asset storage URL
	Details     []ProductDetail `json:"details" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" validate:"dive"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// ProductDetail is a sellable product/unit combination. Restock lines point at it.
type ProductDetail struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index"`
	Unit      string  `json:"unit" gorm:"type:varchar(30)" validate:"required,max=30"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles known to the back office.
const (
	RoleOwner     = "owner"
	RoleManager   = "manager"
	RoleWarehouse = "warehouse"
	RoleOutlet    = "outlet"
)

// CanReview reports whether role may approve or reject restock requests.
func CanReview(role string) bool {
	return role == RoleOwner || role == RoleManager
}

// User represents a back-office user.
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username    string         `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email       string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string         `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role        string         `json:"role" gorm:"type:varchar(20);not null;default:'outlet'" validate:"required,oneof=owner manager warehouse outlet"`
	WarehouseID string         `json:"warehouse_id,omitempty" gorm:"type:varchar(36)" validate:"omitempty,max=36"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

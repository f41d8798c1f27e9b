package models

import "time"

// RestockStatus is the lifecycle state of a restock request.
type RestockStatus string

const (
	StatusPending  RestockStatus = "pending"
	StatusApproved RestockStatus = "approved"
	StatusRejected RestockStatus = "rejected"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s RestockStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Valid reports whether s is one of the known statuses.
func (s RestockStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// RequestedProduct is a single line of a restock request.
type RequestedProduct struct {
	ID               uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	RestockRequestID string  `json:"-" gorm:"type:varchar(36);index"`
	Position         int     `json:"-"`
	ProductDetailID  string  `json:"product_detail_id" gorm:"type:varchar(36);not null"`
	RequestedStock   int     `json:"requested_stock" gorm:"not null"`
	Unit             string  `json:"unit" gorm:"type:varchar(30)"`
	Reason           *string `json:"reason"`
}

// RestockRequest asks for additional stock for an outlet or warehouse.
// It is never deleted, only transitioned.
type RestockRequest struct {
	ID              string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OutletID        string             `json:"outlet_id" gorm:"type:varchar(36);index;not null"`
	Outlet          Warehouse          `json:"outlet" gorm:"foreignKey:OutletID"`
	Status          RestockStatus      `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	Items           []RequestedProduct `json:"items" gorm:"foreignKey:RestockRequestID;constraint:OnDelete:CASCADE"`
	RequestedBy     string             `json:"requested_by" gorm:"type:varchar(36)"`
	ReviewedBy      string             `json:"reviewed_by,omitempty" gorm:"type:varchar(36)"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CreateRestockItem is one normalized line of a restock submission.
type CreateRestockItem struct {
	ProductDetailID string  `json:"product_detail_id" validate:"required,max=36"`
	RequestedStock  int     `json:"requested_stock" validate:"gt=0,lte=2147483647"`
	Unit            string  `json:"unit" validate:"omitempty,max=30"`
	Reason          *string `json:"reason" validate:"omitempty,max=255"`
}

// CreateRestockPayload is the body accepted by the create endpoint.
type CreateRestockPayload struct {
	OutletID string              `json:"outlet_id" validate:"required,max=36"`
	Items    []CreateRestockItem `json:"items" validate:"required,min=1,dive"`
}

// RejectPayload carries the optional rejection reason.
type RejectPayload struct {
	Reason *string `json:"reason" validate:"omitempty,max=255"`
}

package validation

import (
	"strings"

	"tokoadmin/internal/models"
)

// RestockItemDraft is one line of the restock submission form, as typed.
type RestockItemDraft struct {
	ProductDetailID string `json:"product_detail_id" validate:"required,max=36"`
	RequestedStock  string `json:"requested_stock" validate:"required,numberlike,gt0,whole,stockbound"`
	Unit            string `json:"unit" validate:"omitempty,max=30"`
	Reason          string `json:"reason" validate:"omitempty,max=255"`
}

// RestockDraft is the restock submission form.
type RestockDraft struct {
	OutletID string             `json:"outlet_id" validate:"required,max=36"`
	Items    []RestockItemDraft `json:"items" validate:"required,min=1,dive"`
}

// Restock validates d and returns the payload to submit.
func (v *Validator) Restock(d RestockDraft) (models.CreateRestockPayload, error) {
	if err := v.Check(d).Err(); err != nil {
		return models.CreateRestockPayload{}, err
	}

	payload := models.CreateRestockPayload{
		OutletID: strings.TrimSpace(d.OutletID),
		Items:    make([]models.CreateRestockItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		// Checked above: a whole number within MaxRequestedStock.
		qty, _ := toNumber(it.RequestedStock)
		payload.Items = append(payload.Items, models.CreateRestockItem{
			ProductDetailID: strings.TrimSpace(it.ProductDetailID),
			RequestedStock:  int(qty),
			Unit:            strings.TrimSpace(it.Unit),
			Reason:          optional(it.Reason),
		})
	}
	return payload, nil
}

// UserDraft is the user management form.
type UserDraft struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Role        string `json:"role" validate:"required,oneof=owner manager warehouse outlet"`
	WarehouseID string `json:"warehouse_id" validate:"omitempty,max=36"`
}

// User validates d and returns the user record to submit.
func (v *Validator) User(d UserDraft) (models.User, error) {
	if err := v.Check(d).Err(); err != nil {
		return models.User{}, err
	}
	return models.User{
		Username:    strings.TrimSpace(d.Username),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		Password:    d.Password,
		Role:        d.Role,
		WarehouseID: strings.TrimSpace(d.WarehouseID),
	}, nil
}

// ProductDetailDraft is a unit row of the product form.
type ProductDetailDraft struct {
	Unit  string `json:"unit" validate:"required,max=30"`
	Price string `json:"price" validate:"required,numberlike,gt0"`
}

// ProductDraft is the product form.
type ProductDraft struct {
	Name        string               `json:"name" validate:"required,min=3,max=100"`
	Description string               `json:"description" validate:"omitempty,max=500"`
	Image       string               `json:"image" validate:"omitempty,max=255"`
	Details     []ProductDetailDraft `json:"details" validate:"required,min=1,dive"`
}

// Product validates d and returns the product record to submit.
func (v *Validator) Product(d ProductDraft) (models.Product, error) {
	if err := v.Check(d).Err(); err != nil {
		return models.Product{}, err
	}
	p := models.Product{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Image:       strings.TrimSpace(d.Image),
	}
	for _, det := range d.Details {
		price, _ := toNumber(det.Price)
		p.Details = append(p.Details, models.ProductDetail{Unit: strings.TrimSpace(det.Unit), Price: price})
	}
	return p, nil
}

type statusFilter struct {
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// Status checks a status filter value. The empty string means no filter.
func (v *Validator) Status(s string) (models.RestockStatus, error) {
	f := statusFilter{Status: strings.TrimSpace(s)}
	if err := v.Check(f).Err(); err != nil {
		return "", err
	}
	return models.RestockStatus(f.Status), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

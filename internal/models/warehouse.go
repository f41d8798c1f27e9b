package models

import "time"

// Warehouse kinds. Outlets are the retail points that file restock requests.
const (
	KindWarehouse = "warehouse"
	KindOutlet    = "outlet"
)

// Warehouse is a stock-holding location, either a central warehouse or an outlet.
type Warehouse struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Address   string    `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Kind      string    `json:"kind" gorm:"type:varchar(20);not null" validate:"required,oneof=warehouse outlet"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseStock is the quantity of one product detail held at a warehouse.
type WarehouseStock struct {
	ID              uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	WarehouseID     string    `json:"warehouse_id" gorm:"type:varchar(36);uniqueIndex:idx_stock_location"`
	ProductDetailID string    `json:"product_detail_id" gorm:"type:varchar(36);uniqueIndex:idx_stock_location"`
	Quantity        int       `json:"quantity"`
	UpdatedAt       time.Time `json:"updated_at"`
}

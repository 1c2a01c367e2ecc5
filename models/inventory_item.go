package models

import "time"

type InventoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name          string `json:"name" gorm:"uniqueIndex;type:varchar(191);not null"`
	Quantity      int64  `json:"quantity" gorm:"not null;default:0"`
	PurchasePrice int64  `json:"purchasePrice" gorm:"column:purchase_price;not null;default:0"`
	// nil until the front desk prices the item; unpriced items cannot be billed.
	SalePrice *int64 `json:"salePrice" gorm:"column:sale_price"`
}

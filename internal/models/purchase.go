package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Purchase struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Supplier     string          `gorm:"size:100" json:"supplier"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shippingCost"`
	TotalCost    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalCost"`
	UserID       uint            `gorm:"index;not null" json:"userId"`
	PurchaseDate time.Time       `gorm:"index;not null" json:"purchaseDate"`
	Items        []PurchaseItem  `gorm:"foreignKey:PurchaseID" json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// PurchaseItem: alım anındaki birim maliyet varyantın güncel fiyatından
// bilinçli olarak bağımsızdır. Soft delete yok; alım silinse de kalemler
// geçmiş olarak saklanır.
type PurchaseItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	PurchaseID     uint            `gorm:"index;not null" json:"purchaseId"`
	VariantID      uint            `gorm:"index;not null" json:"variantId"`
	Variant        ProductVariant  `gorm:"foreignKey:VariantID" json:"variant"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	CostAtPurchase decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"costAtPurchase"`
}

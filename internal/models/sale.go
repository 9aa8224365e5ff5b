package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ClientName  string          `gorm:"size:100" json:"clientName"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	SaleDate    time.Time       `gorm:"index;not null" json:"saleDate"`
	Items       []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// SaleItem: satış anındaki birim fiyat, varyantın güncel fiyatından bağımsız.
type SaleItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `gorm:"index;not null" json:"saleId"`
	VariantID   uint            `gorm:"index;not null" json:"variantId"`
	Variant     ProductVariant  `gorm:"foreignKey:VariantID" json:"variant"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	PriceAtSale decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"priceAtSale"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	Description string           `gorm:"size:500" json:"description"`
	UserID      uint             `gorm:"index;not null" json:"userId"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant: SKU bazlı satış fiyatı ve eldeki miktar.
// Quantity yalnızca stock paketindeki primitifler üzerinden değiştirilir.
type ProductVariant struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"productId"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	SalePrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"salePrice"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

package sale

import (
	"errors"
	"time"

	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/stock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound    = errors.New("Satış kaydı bulunamadı")
	ErrEmptyItems  = errors.New("Satış en az bir kalem içermelidir")
	ErrBadQuantity = errors.New("Kalem miktarı 0'dan büyük olmalıdır")
	ErrBadPrice    = errors.New("Satış fiyatı negatif olamaz")
)

type ItemInput struct {
	VariantID   uint            `json:"variantId"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
}

type Input struct {
	ClientName string      `json:"clientName"`
	Items      []ItemInput `json:"items"`
}

func validate(in Input) error {
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return ErrBadQuantity
		}
		if it.PriceAtSale.IsNegative() {
			return ErrBadPrice
		}
	}
	return nil
}

// totalAmount = Σ(miktar × satış fiyatı)
func totalAmount(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.PriceAtSale.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Create satışı tek transaction'da kaydeder: önce her kalem için stok
// yeterliliği aynı transaction içinde kontrol edilir, sonra kayıt ve düşümler
// uygulanır. Tek bir kalem bile yetersizse hiçbir varyantın miktarı değişmez
// ve satış kaydı oluşmaz. Düşüm stock.Consume ile korumalı yapıldığından,
// ön kontrolü aynı anda geçen iki eşzamanlı satıştan biri commit edemez.
func Create(db *gorm.DB, userID uint, in Input) (*models.Sale, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	s := &models.Sale{
		ClientName:  in.ClientName,
		TotalAmount: totalAmount(in.Items),
		UserID:      userID,
		SaleDate:    time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.VariantID)
		}
		variants, err := stock.OwnedVariants(tx, userID, ids)
		if err != nil {
			return err
		}

		// Ön kontrol: yetersiz stok, varyant adıyla birlikte raporlanır.
		for _, it := range in.Items {
			v, ok := variants[it.VariantID]
			if !ok {
				return stock.ErrVariantNotFound
			}
			if v.Quantity < it.Quantity {
				return &stock.InsufficientStockError{
					VariantID:   v.ID,
					VariantName: v.Name,
					Requested:   it.Quantity,
					Available:   v.Quantity,
				}
			}
		}

		if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
			return err
		}

		items := make([]models.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SaleItem{
				SaleID:      s.ID,
				VariantID:   it.VariantID,
				Quantity:    it.Quantity,
				PriceAtSale: it.PriceAtSale,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			if err := stock.Consume(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
		}

		s.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete satışı soft delete eder ve kalemleri stoğa iade eder; Create'in
// simetrik tersi. Silinmiş satış varsayılan kapsama girmediğinden ikinci
// silme ErrNotFound alır, stok iki kez iade edilmez.
func Delete(db *gorm.DB, userID, saleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var s models.Sale
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&s, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, it := range s.Items {
			if err := stock.Adjust(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
		}

		return tx.Delete(&s).Error
	})
}

func List(db *gorm.DB, userID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Preload("Items.Variant").
		Where("user_id = ?", userID).
		Order("sale_date desc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

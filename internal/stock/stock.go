// Package stock, varyant stok miktarına dokunan tek noktadır. Buradaki
// primitifler her zaman çağıranın açık transaction'ı içinde kullanılır;
// tek başına çağrılmaları kısmi stok değişikliğine yol açar.
package stock

import (
	"errors"

	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

// Adjust varyantın miktarını delta kadar değiştirir (pozitif: stok girişi,
// negatif: düşüm). Negatiflik kontrolü yapmaz; alım düzenlemelerinde miktar
// transaction içinde geçici olarak eksiye düşebilir, commit öncesi
// EnsureNonNegative ile doğrulanır.
func Adjust(tx *gorm.DB, variantID uint, delta int) error {
	res := tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

// Consume satış için korumalı düşüm yapar: UPDATE ancak quantity >= qty ise
// uygulanır. Ön kontrol ile düşüm arasında başka bir satış araya girerse
// satır etkilenmez ve işlem InsufficientStock ile iptal olur. FOR UPDATE
// gerektirmediği için postgres ve sqlite'ta aynı davranır.
func Consume(tx *gorm.DB, variantID uint, qty int) error {
	res := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND quantity >= ?", variantID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var v models.ProductVariant
		if err := tx.First(&v, variantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVariantNotFound
			}
			return err
		}
		return &InsufficientStockError{
			VariantID:   v.ID,
			VariantName: v.Name,
			Requested:   qty,
			Available:   v.Quantity,
		}
	}
	return nil
}

// EnsureNonNegative transaction'ın son adımı olarak çağrılır: dokunulan
// varyantlardan herhangi biri eksi miktarla commit olacaksa işlemi iptal
// ettirir.
func EnsureNonNegative(tx *gorm.DB, variantIDs []uint) error {
	if len(variantIDs) == 0 {
		return nil
	}
	var v models.ProductVariant
	err := tx.Where("id IN ? AND quantity < 0", variantIDs).First(&v).Error
	if err == nil {
		return &NegativeStockError{VariantID: v.ID, VariantName: v.Name, Quantity: v.Quantity}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// OwnedVariants kullanıcıya ait canlı varyantları id ile eşleyerek döner.
// Varyant sahipliği, ait olduğu ürünün sahibi üzerinden belirlenir; başka
// kullanıcının varyantı listede yer almaz, çağıran eksikleri
// ErrVariantNotFound olarak değerlendirir.
func OwnedVariants(tx *gorm.DB, userID uint, variantIDs []uint) (map[uint]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := tx.
		Joins("JOIN products ON products.id = product_variants.product_id AND products.deleted_at IS NULL").
		Where("product_variants.id IN ? AND products.user_id = ?", variantIDs, userID).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.ProductVariant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}
	return byID, nil
}

package product

import (
	"errors"
	"strings"

	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/stock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("Ürün bulunamadı")
	ErrNameRequired = errors.New("Ürün adı zorunludur")
	ErrBadPrice     = errors.New("Satış fiyatı negatif olamaz")
)

type VariantInput struct {
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"salePrice"`
}

type CreateInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Variants    []VariantInput `json:"variants"`
}

type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateVariantInput struct {
	Name      *string          `json:"name"`
	SalePrice *decimal.Decimal `json:"salePrice"`
}

// Create ürünü, varsa başlangıç varyantlarıyla birlikte tek transaction'da
// oluşturur. Varyantlar 0 stokla açılır; miktar yalnızca alım/satış
// işlemleriyle değişir.
func Create(db *gorm.DB, userID uint, in CreateInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	for _, v := range in.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return nil, ErrNameRequired
		}
		if v.SalePrice.IsNegative() {
			return nil, ErrBadPrice
		}
	}

	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		UserID:      userID,
	}
	for _, v := range in.Variants {
		p.Variants = append(p.Variants, models.ProductVariant{
			Name:      strings.TrimSpace(v.Name),
			SalePrice: v.SalePrice,
		})
	}

	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	if p.Variants == nil {
		p.Variants = []models.ProductVariant{}
	}
	return p, nil
}

func List(db *gorm.DB, userID uint) ([]models.Product, error) {
	var products []models.Product
	err := db.Where("user_id = ?", userID).
		Preload("Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at asc")
		}).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func Update(db *gorm.DB, userID, productID uint, in UpdateInput) (*models.Product, error) {
	var p models.Product
	if err := db.Where("user_id = ?", userID).First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}

	if err := db.Omit("Variants").Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete ürünü ve tüm varyantlarını tek transaction'da soft delete eder.
// Stok geri alınmaz: envanter, kayıtlarla birlikte dondurulur. Bu bilinçli
// bir politikadır; silme bir zayiat/değer düşüşü işlemi değildir.
func Delete(db *gorm.DB, userID, productID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Where("user_id = ?", userID).First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Önce varyantlar, sonra ürün; ikisi de aynı transaction içinde.
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func AddVariant(db *gorm.DB, userID, productID uint, in VariantInput) (*models.ProductVariant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if in.SalePrice.IsNegative() {
		return nil, ErrBadPrice
	}

	var p models.Product
	if err := db.Where("user_id = ?", userID).First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v := &models.ProductVariant{
		ProductID: p.ID,
		Name:      strings.TrimSpace(in.Name),
		SalePrice: in.SalePrice,
	}
	if err := db.Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// ownedVariant varyantı, ait olduğu ürünün sahibi üzerinden kapsamlayarak
// yükler. Başkasının varyantı ile hiç var olmayan varyant aynı hatayı alır.
func ownedVariant(db *gorm.DB, userID, variantID uint) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := db.
		Joins("JOIN products ON products.id = product_variants.product_id AND products.deleted_at IS NULL").
		Where("product_variants.id = ? AND products.user_id = ?", variantID, userID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrVariantNotFound
		}
		return nil, err
	}
	return &v, nil
}

func UpdateVariant(db *gorm.DB, userID, variantID uint, in UpdateVariantInput) (*models.ProductVariant, error) {
	v, err := ownedVariant(db, userID, variantID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		v.Name = name
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, ErrBadPrice
		}
		v.SalePrice = *in.SalePrice
	}

	if err := db.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVariant tek bir varyantı soft delete eder. Varyanta referans veren
// alım/satış kalemleri tarihçe olarak kalır; fiziksel silme yapılmadığı için
// referans bütünlüğü bozulmaz.
func DeleteVariant(db *gorm.DB, userID, variantID uint) error {
	v, err := ownedVariant(db, userID, variantID)
	if err != nil {
		return err
	}
	return db.Delete(v).Error
}

package purchase

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
	ErrNotFound    = errors.New("Alım kaydı bulunamadı")
	ErrEmptyItems  = errors.New("Alım en az bir kalem içermelidir")
	ErrBadQuantity = errors.New("Kalem miktarı 0'dan büyük olmalıdır")
	ErrBadCost     = errors.New("Birim maliyet negatif olamaz")
	ErrBadShipping = errors.New("Kargo ücreti negatif olamaz")
)

type ItemInput struct {
	VariantID      uint            `json:"variantId"`
	Quantity       int             `json:"quantity"`
	CostAtPurchase decimal.Decimal `json:"costAtPurchase"`
}

type Input struct {
	Supplier     string          `json:"supplier"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Items        []ItemInput     `json:"items"`
}

func validate(in Input) error {
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return ErrBadQuantity
		}
		if it.CostAtPurchase.IsNegative() {
			return ErrBadCost
		}
	}
	if in.ShippingCost.IsNegative() {
		return ErrBadShipping
	}
	return nil
}

// totalCost = Σ(miktar × alım maliyeti) + kargo ücreti
func totalCost(items []ItemInput, shipping decimal.Decimal) decimal.Decimal {
	total := shipping
	for _, it := range items {
		total = total.Add(it.CostAtPurchase.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// resolveVariants girişteki her varyantın kullanıcıya ait ve canlı olduğunu
// doğrular. Eksik olan varyant, var olup olmadığına bakılmaksızın aynı
// hatayla döner.
func resolveVariants(tx *gorm.DB, userID uint, items []ItemInput) error {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.VariantID)
	}
	byID, err := stock.OwnedVariants(tx, userID, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if _, ok := byID[it.VariantID]; !ok {
			return stock.ErrVariantNotFound
		}
	}
	return nil
}

// Create alım kaydını, kalemlerini ve stok artışlarını tek transaction'da
// uygular. Herhangi bir adım başarısız olursa tamamı geri alınır; yarım
// stok değişikliği ya da sahipsiz alım kaydı oluşmaz.
func Create(db *gorm.DB, userID uint, in Input) (*models.Purchase, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	p := &models.Purchase{
		Supplier:     in.Supplier,
		ShippingCost: in.ShippingCost,
		TotalCost:    totalCost(in.Items, in.ShippingCost),
		UserID:       userID,
		PurchaseDate: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := resolveVariants(tx, userID, in.Items); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}

		items := make([]models.PurchaseItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.PurchaseItem{
				PurchaseID:     p.ID,
				VariantID:      it.VariantID,
				Quantity:       it.Quantity,
				CostAtPurchase: it.CostAtPurchase,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			if err := stock.Adjust(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
		}

		p.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update kalem listesini bütünüyle değiştirir: eski kalemlerin stok etkisi
// geri alınır, kalemler silinir, yenileri eklenip stoğa uygulanır ve toplam
// yeniden hesaplanır. Fark hesabı yerine tam geri al + yeniden uygula
// stratejisi bilinçlidir; ara durum transaction dışından asla görünmez.
// Hem eski hem yeni listede geçen bir varyant commit anında net farkı görür.
func Update(db *gorm.DB, userID, purchaseID uint, in Input) (*models.Purchase, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var p models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&p, purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := resolveVariants(tx, userID, in.Items); err != nil {
			return err
		}

		touched := make([]uint, 0, len(p.Items)+len(in.Items))

		// Eski kalemlerin stok etkisini geri al. Miktar burada geçici olarak
		// eksiye düşebilir; commit öncesi EnsureNonNegative ile doğrulanır.
		for _, old := range p.Items {
			if err := stock.Adjust(tx, old.VariantID, -old.Quantity); err != nil {
				return err
			}
			touched = append(touched, old.VariantID)
		}

		if err := tx.Where("purchase_id = ?", p.ID).Delete(&models.PurchaseItem{}).Error; err != nil {
			return err
		}

		items := make([]models.PurchaseItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.PurchaseItem{
				PurchaseID:     p.ID,
				VariantID:      it.VariantID,
				Quantity:       it.Quantity,
				CostAtPurchase: it.CostAtPurchase,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		for _, it := range in.Items {
			if err := stock.Adjust(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
			touched = append(touched, it.VariantID)
		}

		newTotal := totalCost(in.Items, in.ShippingCost)
		updates := map[string]interface{}{
			"supplier":      in.Supplier,
			"shipping_cost": in.ShippingCost,
			"total_cost":    newTotal,
		}
		if err := tx.Model(&models.Purchase{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return err
		}

		p.Supplier = in.Supplier
		p.ShippingCost = in.ShippingCost
		p.TotalCost = newTotal
		p.Items = items

		return stock.EnsureNonNegative(tx, touched)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete alımı soft delete eder ve stok artışını geri alır. Soft delete
// edilmiş bir alım varsayılan sorgu kapsamına girmediği için ikinci silme
// denemesi ErrNotFound alır; stok hiçbir koşulda iki kez geri alınmaz.
// Kalemler geçmiş olarak yerinde bırakılır.
func Delete(db *gorm.DB, userID, purchaseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var p models.Purchase
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&p, purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		touched := make([]uint, 0, len(p.Items))
		for _, it := range p.Items {
			if err := stock.Adjust(tx, it.VariantID, -it.Quantity); err != nil {
				return err
			}
			touched = append(touched, it.VariantID)
		}

		if err := tx.Delete(&p).Error; err != nil {
			return err
		}

		return stock.EnsureNonNegative(tx, touched)
	})
}

func List(db *gorm.DB, userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := db.Preload("Items.Variant").
		Where("user_id = ?", userID).
		Order("purchase_date desc").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func Get(db *gorm.DB, userID, purchaseID uint) (*models.Purchase, error) {
	var p models.Purchase
	err := db.Preload("Items.Variant").
		Where("user_id = ?", userID).
		First(&p, purchaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

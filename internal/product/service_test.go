package product

import (
	"testing"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateProductWithVariants(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{
		Name:        "Meyve Suyu",
		Description: "Taze sıkım",
		Variants: []VariantInput{
			{Name: "Portakal", SalePrice: dec("5.00")},
			{Name: "Elma", SalePrice: dec("4.50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, p.Variants, 2)
	for _, v := range p.Variants {
		assert.Zero(t, v.Quantity, "varyantlar 0 stokla açılır")
		assert.Equal(t, p.ID, v.ProductID)
	}
}

func TestCreateProductNameRequired(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, 1, CreateInput{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestListScopedToUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, 1, CreateInput{Name: "Meyve Suyu"})
	require.NoError(t, err)
	_, err = Create(db, 2, CreateInput{Name: "Kahve"})
	require.NoError(t, err)

	products, err := List(db, 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Meyve Suyu", products[0].Name)
}

func TestUpdateProduct(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{Name: "Meyve Suyu"})
	require.NoError(t, err)

	name := "Limonata"
	updated, err := Update(db, 1, p.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Limonata", updated.Name)

	_, err = Update(db, 2, p.ID, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductCascade(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{
		Name: "Meyve Suyu",
		Variants: []VariantInput{
			{Name: "Portakal", SalePrice: dec("5")},
			{Name: "Elma", SalePrice: dec("4")},
		},
	})
	require.NoError(t, err)

	// Varyantlardan birinde stok olsun; silme stoğu geri almaz
	require.NoError(t, db.Model(&models.ProductVariant{}).
		Where("id = ?", p.Variants[0].ID).
		Update("quantity", 8).Error)

	require.NoError(t, Delete(db, 1, p.ID))

	// Ürün ve varyantları görünmez oldu
	products, err := List(db, 1)
	require.NoError(t, err)
	assert.Empty(t, products)

	var liveVariants int64
	db.Model(&models.ProductVariant{}).Where("product_id = ?", p.ID).Count(&liveVariants)
	assert.Zero(t, liveVariants)

	// Kayıtlar fiziksel olarak duruyor, miktar dondurulmuş halde
	var all []models.ProductVariant
	require.NoError(t, db.Unscoped().Where("product_id = ?", p.ID).Find(&all).Error)
	require.Len(t, all, 2)
	for _, v := range all {
		assert.True(t, v.DeletedAt.Valid)
	}
	var frozen models.ProductVariant
	require.NoError(t, db.Unscoped().First(&frozen, p.Variants[0].ID).Error)
	assert.Equal(t, 8, frozen.Quantity)
}

func TestDeleteProductNotOwned(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{Name: "Meyve Suyu"})
	require.NoError(t, err)

	err = Delete(db, 2, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddVariant(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{Name: "Meyve Suyu"})
	require.NoError(t, err)

	v, err := AddVariant(db, 1, p.ID, VariantInput{Name: "Vişne", SalePrice: dec("6")})
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)
	assert.Zero(t, v.Quantity)

	_, err = AddVariant(db, 2, p.ID, VariantInput{Name: "Vişne", SalePrice: dec("6")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVariantOwnership(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{
		Name:     "Meyve Suyu",
		Variants: []VariantInput{{Name: "Portakal", SalePrice: dec("5")}},
	})
	require.NoError(t, err)
	variantID := p.Variants[0].ID

	price := dec("7.50")
	v, err := UpdateVariant(db, 1, variantID, UpdateVariantInput{SalePrice: &price})
	require.NoError(t, err)
	assert.True(t, v.SalePrice.Equal(dec("7.50")))

	// Başkasının varyantı, hiç yokmuş gibi davranır
	_, err = UpdateVariant(db, 2, variantID, UpdateVariantInput{SalePrice: &price})
	assert.ErrorIs(t, err, stock.ErrVariantNotFound)
}

func TestDeleteVariant(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, 1, CreateInput{
		Name:     "Meyve Suyu",
		Variants: []VariantInput{{Name: "Portakal", SalePrice: dec("5")}},
	})
	require.NoError(t, err)
	variantID := p.Variants[0].ID

	require.NoError(t, DeleteVariant(db, 1, variantID))

	products, err := List(db, 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Empty(t, products[0].Variants)

	err = DeleteVariant(db, 1, variantID)
	assert.ErrorIs(t, err, stock.ErrVariantNotFound)
}

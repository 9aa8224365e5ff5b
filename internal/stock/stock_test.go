package stock

import (
	"testing"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

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

func seedVariant(t *testing.T, db *gorm.DB, userID uint, name string, qty int) models.ProductVariant {
	t.Helper()
	p := models.Product{Name: name + " ürünü", UserID: userID}
	require.NoError(t, db.Create(&p).Error)
	v := models.ProductVariant{ProductID: p.ID, Name: name, SalePrice: decimal.RequireFromString("5.00"), Quantity: qty}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func variantQty(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var v models.ProductVariant
	require.NoError(t, db.Unscoped().First(&v, id).Error)
	return v.Quantity
}

func TestAdjust(t *testing.T) {
	db := setupTestDB(t)
	v := seedVariant(t, db, 1, "Portakal", 10)

	require.NoError(t, Adjust(db, v.ID, 5))
	assert.Equal(t, 15, variantQty(t, db, v.ID))

	require.NoError(t, Adjust(db, v.ID, -8))
	assert.Equal(t, 7, variantQty(t, db, v.ID))
}

func TestAdjustVariantNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := Adjust(db, 999, 5)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestAdjustSoftDeletedVariant(t *testing.T) {
	db := setupTestDB(t)
	v := seedVariant(t, db, 1, "Portakal", 10)
	require.NoError(t, db.Delete(&v).Error)

	err := Adjust(db, v.ID, 5)
	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.Equal(t, 10, variantQty(t, db, v.ID))
}

func TestConsume(t *testing.T) {
	db := setupTestDB(t)
	v := seedVariant(t, db, 1, "Portakal", 10)

	require.NoError(t, Consume(db, v.ID, 4))
	assert.Equal(t, 6, variantQty(t, db, v.ID))
}

func TestConsumeInsufficient(t *testing.T) {
	db := setupTestDB(t)
	v := seedVariant(t, db, 1, "Portakal", 3)

	err := Consume(db, v.ID, 5)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, v.ID, insufficient.VariantID)
	assert.Equal(t, "Portakal", insufficient.VariantName)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 3, variantQty(t, db, v.ID))
}

func TestConsumeVariantNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := Consume(db, 999, 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestEnsureNonNegative(t *testing.T) {
	db := setupTestDB(t)
	ok := seedVariant(t, db, 1, "Portakal", 2)
	bad := seedVariant(t, db, 1, "Elma", 1)

	require.NoError(t, Adjust(db, bad.ID, -4))

	err := EnsureNonNegative(db, []uint{ok.ID, bad.ID})

	var negative *NegativeStockError
	require.ErrorAs(t, err, &negative)
	assert.Equal(t, bad.ID, negative.VariantID)
	assert.Equal(t, -3, negative.Quantity)

	assert.NoError(t, EnsureNonNegative(db, []uint{ok.ID}))
	assert.NoError(t, EnsureNonNegative(db, nil))
}

func TestOwnedVariants(t *testing.T) {
	db := setupTestDB(t)
	mine := seedVariant(t, db, 1, "Portakal", 5)
	other := seedVariant(t, db, 2, "Elma", 5)

	byID, err := OwnedVariants(db, 1, []uint{mine.ID, other.ID})
	require.NoError(t, err)

	assert.Contains(t, byID, mine.ID)
	assert.NotContains(t, byID, other.ID)
}

func TestOwnedVariantsDeletedProduct(t *testing.T) {
	db := setupTestDB(t)
	v := seedVariant(t, db, 1, "Portakal", 5)

	require.NoError(t, db.Delete(&models.Product{}, v.ProductID).Error)

	byID, err := OwnedVariants(db, 1, []uint{v.ID})
	require.NoError(t, err)
	assert.NotContains(t, byID, v.ID)
}

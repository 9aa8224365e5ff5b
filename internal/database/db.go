package database

import (
	"fmt"

	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open veritabanı bağlantısını açar ve şemayı migrate eder.
// Bağlantı global tutulmaz; sahipliği çağırandadır (cmd/server) ve
// handler'lara parametre olarak geçirilir.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate testlerde sqlite ile de kullanıldığı için Open'dan ayrıdır.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.Sale{},
		&models.SaleItem{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}

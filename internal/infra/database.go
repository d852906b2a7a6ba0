package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts/internal/model"
)

// NewDatabase opens a GORM connection backed by pgx. The schema belongs to the
// persistent store and is never migrated here. TranslateError maps driver
// errors onto gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
// No connection is made here, so an unreachable store at startup is served
// by the fallback path until it comes back.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates the tables for integration tests. Production schemas
// are owned by the database, including the unique (product_id, shop_id) index.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Shop{},
		&model.Inventory{},
		&model.StockAlert{},
		&model.Sale{},
		&model.SaleItem{},
		&model.ReorderRequest{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_product_shop
		ON inventory (product_id, shop_id)`).Error
}

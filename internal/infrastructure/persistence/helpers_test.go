package persistence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated in-memory sqlite database with foreign keys enforced
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(":memory:")), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedCollection(t *testing.T, db *gorm.DB, title string) uint64 {
	t.Helper()
	m := &models.CollectionModel{Title: title}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func seedProduct(t *testing.T, db *gorm.DB, collectionID uint64, title, price string, inventory int) uint64 {
	t.Helper()
	m := &models.ProductModel{
		Title:        title,
		Slug:         title,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	require.NoError(t, db.Omit("Collection").Create(m).Error)
	return m.ID
}

func seedCustomer(t *testing.T, db *gorm.DB, first, last, email string) uint64 {
	t.Helper()
	m := &models.CustomerModel{FirstName: first, LastName: last, Email: email, Membership: "B"}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"unicode"

	"github.com/kendall-kelly/table-orders-api/config"
	"github.com/kendall-kelly/table-orders-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// NewTestDB opens a migrated in-memory SQLite database private to the test.
// The pool is capped at one connection so every statement sees the same database
// and concurrent callers are serialized.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "failed to migrate test database")
	return db
}

// SeedTables registers tables with the given codes
func SeedTables(t *testing.T, db *gorm.DB, codes ...string) []models.Table {
	t.Helper()

	tables := make([]models.Table, 0, len(codes))
	for _, code := range codes {
		table := models.Table{Code: code}
		require.NoError(t, db.Create(&table).Error)
		tables = append(tables, table)
	}
	return tables
}

// SeedMenuItems registers menu items with the given names
func SeedMenuItems(t *testing.T, db *gorm.DB, names ...string) []models.MenuItem {
	t.Helper()

	items := make([]models.MenuItem, 0, len(names))
	for _, name := range names {
		item := models.MenuItem{Name: name}
		require.NoError(t, db.Create(&item).Error)
		items = append(items, item)
	}
	return items
}

// SeedOrder opens an order for the table with one line per entry of lines
func SeedOrder(t *testing.T, db *gorm.DB, tableID uint, lines ...models.OrderLine) models.Order {
	t.Helper()

	order := models.Order{TableID: tableID}
	require.NoError(t, db.Create(&order).Error)
	for _, line := range lines {
		line.OrderID = order.ID
		require.NoError(t, db.Create(&line).Error)
	}
	return order
}

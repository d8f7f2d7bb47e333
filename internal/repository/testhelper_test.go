package repository

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"cashcard_system/internal/config"
	"cashcard_system/internal/db"
	"cashcard_system/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a named in-memory SQLite database unique to the test and migrates it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name())),
	}
	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// seedCards inserts cards with their explicit ids.
func seedCards(t *testing.T, gdb *gorm.DB, cards ...domain.CashCard) {
	t.Helper()
	require.NoError(t, db.SeedCashCards(context.Background(), gdb, cards))
}

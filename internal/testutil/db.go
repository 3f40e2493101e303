// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/macormexico/sistema-pnc/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB returns a private in-memory SQLite database with the shared models
// and the given extra models migrated.
func NewDB(t testing.TB, extra ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:pnc_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.MigrateShared(db))
	require.NoError(t, database.MigrateModels(db, extra))
	return db
}

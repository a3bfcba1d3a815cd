// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"agricredit-backend/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh schema per call. SQLite keeps one connection, so
// transactions run one at a time.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGormWithDialector(sqlite.Open(":memory:"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

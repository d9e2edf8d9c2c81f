// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures and workbooks, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"findash/internal/ingest"
	"findash/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database migrated for the
// upsert policy.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestDBWithPolicy(t, ingest.PolicyUpsert)
}

// SetupTestDBWithPolicy creates an isolated in-memory SQLite database with
// the schema of the given record policy.
func SetupTestDBWithPolicy(t *testing.T, policy ingest.Policy) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels(policy)...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

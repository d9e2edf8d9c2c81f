package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"findash/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique name.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("Test User %d", nextID()))
}

// CreateTestUserWithName creates a user with the given name.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecord stores a numeric-month record with the given amount.
func CreateTestRecord(t *testing.T, db *gorm.DB, userID uint, year, month int, amount string) *models.FinancialRecord {
	t.Helper()

	record := &models.FinancialRecord{
		UserID: userID,
		Year:   year,
		Month:  month,
		Amount: decimal.RequireFromString(amount),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}

// CreateTestLabeledRecord stores a labeled-month record with the given amount.
func CreateTestLabeledRecord(t *testing.T, db *gorm.DB, userID uint, year int, label, amount string) *models.LabeledFinancialRecord {
	t.Helper()

	record := &models.LabeledFinancialRecord{
		UserID: userID,
		Year:   year,
		Month:  label,
		Amount: decimal.RequireFromString(amount),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test labeled record: %v", err)
	}
	return record
}

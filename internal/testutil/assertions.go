package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "findash/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertRecordCount checks the number of financial_records rows stored for (userID, year).
func AssertRecordCount(t *testing.T, db *gorm.DB, userID uint, year int, expected int64) {
	t.Helper()

	var count int64
	if err := db.Table("financial_records").Where("user_id = ? AND year = ?", userID, year).Count(&count).Error; err != nil {
		t.Fatalf("failed to count records: %v", err)
	}
	if count != expected {
		t.Errorf("expected %d records for user %d/%d, got %d", expected, userID, year, count)
	}
}

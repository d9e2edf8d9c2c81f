package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "findash/internal/errors"
	"findash/internal/ingest"
	"findash/internal/models"
)

// insertBatchSize keeps each INSERT under SQLite's bound-variable limit.
const insertBatchSize = 500

// recordStore is the gorm-backed RecordStore.
type recordStore struct {
	db     *gorm.DB
	policy ingest.Policy
}

// NewRecordStore creates a RecordStore writing with the given policy.
func NewRecordStore(db *gorm.DB, policy ingest.Policy) RecordStore {
	return &recordStore{db: db, policy: policy}
}

// Policy returns the write policy of the store.
func (s *recordStore) Policy() ingest.Policy {
	return s.policy
}

// WithWriter runs fn against a writer pinned to one connection. A failure to
// obtain the connection is reported as ErrStoreUnavailable.
func (s *recordStore) WithWriter(ctx context.Context, fn func(w RecordWriter) error) error {
	acquired := false
	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		acquired = true
		return fn(&recordWriter{conn: conn, policy: s.policy})
	})
	if err != nil && !acquired {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return err
}

// recordWriter writes records over a single connection.
type recordWriter struct {
	conn   *gorm.DB
	policy ingest.Policy
}

// LookupUser retrieves the owner of the records about to be written.
func (w *recordWriter) LookupUser(userID uint) (*models.User, error) {
	var user models.User
	if err := w.conn.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// Write persists records in one transaction using the store's policy.
func (w *recordWriter) Write(userID uint, year int, records []ingest.Record) (int, error) {
	err := w.conn.Transaction(func(tx *gorm.DB) error {
		if w.policy == ingest.PolicyReplace {
			return replaceYear(tx, userID, year, records)
		}
		return upsertMonths(tx, userID, year, records)
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return len(records), nil
}

// upsertMonths inserts each month or overwrites the amount of an existing
// (user, year, month). Repeated months keep the last amount in file order.
func upsertMonths(tx *gorm.DB, userID uint, year int, records []ingest.Record) error {
	if len(records) == 0 {
		return nil
	}

	index := make(map[int]int, len(records))
	rows := make([]models.FinancialRecord, 0, len(records))
	for _, r := range records {
		if !r.Month.IsNumeric() {
			return fmt.Errorf("month %q is not numeric", r.Month.Label)
		}
		if i, ok := index[r.Month.Number]; ok {
			rows[i].Amount = r.Amount
			continue
		}
		index[r.Month.Number] = len(rows)
		rows = append(rows, models.FinancialRecord{
			UserID: userID,
			Year:   year,
			Month:  r.Month.Number,
			Amount: r.Amount,
		})
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&rows).Error
}

// replaceYear deletes every record of (user, year) and inserts records as-is.
func replaceYear(tx *gorm.DB, userID uint, year int, records []ingest.Record) error {
	if err := tx.Where("user_id = ? AND year = ?", userID, year).
		Delete(&models.LabeledFinancialRecord{}).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([]models.LabeledFinancialRecord, len(records))
	for i, r := range records {
		rows[i] = models.LabeledFinancialRecord{
			UserID: userID,
			Year:   year,
			Month:  r.Month.String(),
			Amount: r.Amount,
		}
	}
	return tx.CreateInBatches(&rows, insertBatchSize).Error
}

package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "findash/internal/errors"
	"findash/internal/ingest"
	"findash/internal/models"
)

// financeService reads stored financial records.
type financeService struct {
	db     *gorm.DB
	users  UserServicer
	policy ingest.Policy
}

// NewFinanceService creates a new FinanceServicer for a deployment using policy.
func NewFinanceService(db *gorm.DB, users UserServicer, policy ingest.Policy) FinanceServicer {
	return &financeService{db: db, users: users, policy: policy}
}

// GetYearRecords returns the user's records for year. Numeric months are
// ordered by month, labels keep their upload order. A known user without
// records gets an empty list.
func (s *financeService) GetYearRecords(ctx context.Context, userID uint, year int) (*YearRecords, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := []RecordView{}
	db := s.db.WithContext(ctx).Where("user_id = ? AND year = ?", userID, year)

	if s.policy == ingest.PolicyReplace {
		var rows []models.LabeledFinancialRecord
		if err := db.Order("record_id").Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, r := range rows {
			views = append(views, RecordView{Month: ingest.LabelMonth(r.Month), Amount: formatAmount(r.Amount)})
		}
	} else {
		var rows []models.FinancialRecord
		if err := db.Order("month").Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, r := range rows {
			views = append(views, RecordView{Month: ingest.NumericMonth(r.Month), Amount: formatAmount(r.Amount)})
		}
	}

	return &YearRecords{UserName: user.Name, Year: year, Records: views}, nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

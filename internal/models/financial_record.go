package models

import (
	"github.com/shopspring/decimal"

	"findash/internal/ingest"
)

// FinancialRecord is a monthly amount keyed by a numeric month. At most one
// row exists per (user, year, month).
type FinancialRecord struct {
	ID     uint            `gorm:"column:record_id;primaryKey" json:"-"`
	UserID uint            `gorm:"not null;uniqueIndex:idx_user_year_month" json:"user_id"`
	Year   int             `gorm:"not null;uniqueIndex:idx_user_year_month" json:"year"`
	Month  int             `gorm:"not null;uniqueIndex:idx_user_year_month" json:"month"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName specifies the table name
func (FinancialRecord) TableName() string {
	return "financial_records"
}

// LabeledFinancialRecord is a monthly amount keyed by a free-text month
// label. Labels are not unique; a year is always replaced as a whole.
type LabeledFinancialRecord struct {
	ID     uint            `gorm:"column:record_id;primaryKey" json:"-"`
	UserID uint            `gorm:"not null;index:idx_user_year" json:"user_id"`
	Year   int             `gorm:"not null;index:idx_user_year" json:"year"`
	Month  string          `gorm:"size:32;not null" json:"month"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// TableName specifies the table name
func (LabeledFinancialRecord) TableName() string {
	return "financial_records"
}

// RecordModel returns the financial_records model stored under policy.
func RecordModel(policy ingest.Policy) interface{} {
	if policy == ingest.PolicyReplace {
		return &LabeledFinancialRecord{}
	}
	return &FinancialRecord{}
}

// AllModels lists the models migrated for a deployment using policy.
func AllModels(policy ingest.Policy) []interface{} {
	return []interface{}{
		&User{},
		RecordModel(policy),
		&UploadLog{},
	}
}

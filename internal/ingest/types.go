// Package ingest holds the row-level rules for monthly financial uploads:
// the write policies, month representations, normalized records and the
// errors reported for rejected rows.
package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Policy selects how an upload is persisted for a (user, year).
type Policy string

const (
	// PolicyUpsert inserts each month or overwrites its amount on conflict.
	PolicyUpsert Policy = "upsert"
	// PolicyReplace deletes the whole year and inserts every uploaded row.
	PolicyReplace Policy = "replace"
)

// MonthMode returns the month representation the policy stores.
func (p Policy) MonthMode() MonthMode {
	if p == PolicyReplace {
		return MonthLabel
	}
	return MonthNumeric
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyUpsert || p == PolicyReplace
}

// MonthMode is the representation a deployment uses for the Month column.
type MonthMode int

const (
	// MonthNumeric requires an integer month in [1, 12].
	MonthNumeric MonthMode = iota
	// MonthLabel accepts any non-empty text label.
	MonthLabel
)

// Month is either a calendar month number or a free-text label.
type Month struct {
	Number int
	Label  string
}

// NumericMonth returns a month identified by its number.
func NumericMonth(n int) Month { return Month{Number: n} }

// LabelMonth returns a month identified by a label.
func LabelMonth(label string) Month { return Month{Label: label} }

// IsNumeric reports whether the month carries a number.
func (m Month) IsNumeric() bool { return m.Number != 0 }

func (m Month) String() string {
	if m.IsNumeric() {
		return strconv.Itoa(m.Number)
	}
	return m.Label
}

// MarshalJSON encodes numeric months as JSON numbers and labels as strings.
func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsNumeric() {
		return json.Marshal(m.Number)
	}
	return json.Marshal(m.Label)
}

// Record is a validated row ready to be written.
type Record struct {
	Month  Month
	Amount decimal.Decimal
}

// Reason classifies why a row was rejected.
type Reason string

const (
	ReasonInvalidMonth  Reason = "invalid_month"
	ReasonInvalidAmount Reason = "invalid_amount"
	ReasonMalformedRow  Reason = "malformed_row"
)

// RowError describes a rejected row. Row is the spreadsheet row number as a
// person would count it, so the first data row below the header is 2.
type RowError struct {
	Row    int
	Reason Reason
	Value  string
}

func (e *RowError) Error() string {
	switch e.Reason {
	case ReasonInvalidMonth:
		return fmt.Sprintf("Row %d: Invalid month '%s'", e.Row, e.Value)
	case ReasonInvalidAmount:
		return fmt.Sprintf("Row %d: Invalid amount '%s'", e.Row, e.Value)
	default:
		return fmt.Sprintf("Row %d: Invalid data format", e.Row)
	}
}

package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Column names every upload must carry in its header row.
const (
	ColumnMonth  = "Month"
	ColumnAmount = "Amount"
)

// RequiredColumns lists the header names checked once per file.
var RequiredColumns = []string{ColumnMonth, ColumnAmount}

// MaxLabelLength bounds month labels to the width of the label column.
const MaxLabelLength = 32

// maxAmount is the first value that no longer fits DECIMAL(10,2).
var maxAmount = decimal.New(1, 8)

// Digit bounds checked before any arithmetic. Rescaling a decimal costs
// time proportional to its exponent, so "1e20000000" must never be rounded
// or compared.
const (
	maxAmountIntDigits = 8
	maxMonthIntDigits  = 2
	maxFractionDigits  = 20
)

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Validator normalizes spreadsheet rows into records.
type Validator struct {
	mode MonthMode
}

// NewValidator creates a Validator for the given month representation.
func NewValidator(mode MonthMode) *Validator {
	return &Validator{mode: mode}
}

// MissingColumns returns the required columns absent from header, in
// declaration order. Header names are compared after trimming spaces.
func (v *Validator) MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// Validate checks one data row. rowNumber is the spreadsheet row number used
// in the returned RowError.
func (v *Validator) Validate(rowNumber int, values map[string]string) (Record, *RowError) {
	rawMonth := strings.TrimSpace(values[ColumnMonth])
	rawAmount := strings.TrimSpace(values[ColumnAmount])

	month, reason := v.parseMonth(rawMonth)
	if reason != "" {
		return Record{}, &RowError{Row: rowNumber, Reason: reason, Value: rawMonth}
	}

	amount, reason := parseAmount(rawAmount)
	if reason != "" {
		return Record{}, &RowError{Row: rowNumber, Reason: reason, Value: rawAmount}
	}

	return Record{Month: month, Amount: amount}, nil
}

func (v *Validator) parseMonth(raw string) (Month, Reason) {
	if v.mode == MonthLabel {
		if raw == "" || utf8.RuneCountInString(raw) > MaxLabelLength {
			return Month{}, ReasonInvalidMonth
		}
		return LabelMonth(raw), ""
	}

	if raw == "" {
		return Month{}, ReasonMalformedRow
	}
	if n, ok := monthNames[strings.ToLower(raw)]; ok {
		return NumericMonth(n), ""
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Month{}, ReasonMalformedRow
	}
	if outOfScale(d, maxMonthIntDigits) || !d.IsInteger() || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(12)) {
		return Month{}, ReasonInvalidMonth
	}
	return NumericMonth(int(d.IntPart())), ""
}

func parseAmount(raw string) (decimal.Decimal, Reason) {
	if raw == "" {
		return decimal.Zero, ReasonMalformedRow
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ReasonMalformedRow
	}
	if d.IsNegative() || outOfScale(d, maxAmountIntDigits) {
		return decimal.Zero, ReasonInvalidAmount
	}

	d = d.Round(2)
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ReasonInvalidAmount
	}
	return d, ""
}

// outOfScale reports whether d has more than maxIntDigits digits before the
// decimal point or more than maxFractionDigits after it. It only inspects
// the coefficient length and exponent.
func outOfScale(d decimal.Decimal, maxIntDigits int64) bool {
	exp := int64(d.Exponent())
	if exp < -maxFractionDigits {
		return true
	}
	return int64(d.NumDigits())+exp > maxIntDigits
}

package ingest

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func row(month, amount string) map[string]string {
	return map[string]string{ColumnMonth: month, ColumnAmount: amount}
}

func TestMissingColumns(t *testing.T) {
	v := NewValidator(MonthNumeric)

	t.Run("all_present", func(t *testing.T) {
		if missing := v.MissingColumns([]string{"Amount", " Month ", "Notes"}); len(missing) != 0 {
			t.Errorf("expected no missing columns, got %v", missing)
		}
	})

	t.Run("reports_in_declaration_order", func(t *testing.T) {
		missing := v.MissingColumns([]string{"month", "Total"})
		if !reflect.DeepEqual(missing, []string{"Month", "Amount"}) {
			t.Errorf("expected [Month Amount], got %v", missing)
		}
	})

	t.Run("empty_header", func(t *testing.T) {
		if missing := v.MissingColumns(nil); len(missing) != 2 {
			t.Errorf("expected both columns missing, got %v", missing)
		}
	})
}

func TestValidate_NumericMonth(t *testing.T) {
	v := NewValidator(MonthNumeric)

	accepted := []struct {
		name   string
		month  string
		amount string
		want   Month
		amt    string
	}{
		{"integer", "1", "500", NumericMonth(1), "500"},
		{"float_cell", "12.0", "10.5", NumericMonth(12), "10.5"},
		{"month_name", "March", "0", NumericMonth(3), "0"},
		{"abbreviation", " sep ", "1", NumericMonth(9), "1"},
		{"rounds_amount", "2", "1234.5600000000001", NumericMonth(2), "1234.56"},
		{"scientific_amount", "4", "1.5E+3", NumericMonth(4), "1500"},
		{"largest_amount", "5", "99999999.994", NumericMonth(5), "99999999.99"},
		{"scientific_month", "1.1e1", "1", NumericMonth(11), "1"},
	}
	for _, tc := range accepted {
		t.Run(tc.name, func(t *testing.T) {
			rec, rowErr := v.Validate(2, row(tc.month, tc.amount))
			if rowErr != nil {
				t.Fatalf("unexpected row error: %v", rowErr)
			}
			if rec.Month != tc.want {
				t.Errorf("expected month %v, got %v", tc.want, rec.Month)
			}
			if !rec.Amount.Equal(decimal.RequireFromString(tc.amt)) {
				t.Errorf("expected amount %s, got %s", tc.amt, rec.Amount)
			}
		})
	}

	rejected := []struct {
		name   string
		month  string
		amount string
		reason Reason
	}{
		{"month_too_high", "13", "10", ReasonInvalidMonth},
		{"month_zero", "0", "10", ReasonInvalidMonth},
		{"fractional_month", "1.5", "10", ReasonInvalidMonth},
		{"month_text", "Smarch", "10", ReasonMalformedRow},
		{"month_empty", "", "10", ReasonMalformedRow},
		{"negative_amount", "3", "-5", ReasonInvalidAmount},
		{"amount_text", "3", "lots", ReasonMalformedRow},
		{"amount_empty", "3", "  ", ReasonMalformedRow},
		{"amount_overflow", "3", "100000000", ReasonInvalidAmount},
		{"huge_exponent_amount", "3", "1e20000000", ReasonInvalidAmount},
		{"tiny_exponent_amount", "3", "1e-20000000", ReasonInvalidAmount},
		{"huge_exponent_month", "1e20000000", "5", ReasonInvalidMonth},
		{"tiny_exponent_month", "1e-20000000", "5", ReasonInvalidMonth},
		{"three_digit_month", "1.0e2", "5", ReasonInvalidMonth},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			_, rowErr := v.Validate(7, row(tc.month, tc.amount))
			if rowErr == nil {
				t.Fatal("expected row error")
			}
			if rowErr.Reason != tc.reason {
				t.Errorf("expected reason %s, got %s", tc.reason, rowErr.Reason)
			}
			if rowErr.Row != 7 {
				t.Errorf("expected row 7, got %d", rowErr.Row)
			}
		})
	}
}

func TestValidate_MonthChecksComeFirst(t *testing.T) {
	v := NewValidator(MonthNumeric)

	_, rowErr := v.Validate(3, row("13", "-5"))
	if rowErr == nil || rowErr.Reason != ReasonInvalidMonth {
		t.Fatalf("expected invalid month, got %v", rowErr)
	}
}

func TestValidate_LabelMonth(t *testing.T) {
	v := NewValidator(MonthLabel)

	t.Run("keeps_trimmed_label", func(t *testing.T) {
		rec, rowErr := v.Validate(2, row("  January ", "1500.25"))
		if rowErr != nil {
			t.Fatalf("unexpected row error: %v", rowErr)
		}
		if rec.Month != LabelMonth("January") {
			t.Errorf("expected January label, got %+v", rec.Month)
		}
	})

	t.Run("numbers_are_labels", func(t *testing.T) {
		rec, rowErr := v.Validate(2, row("13", "1"))
		if rowErr != nil {
			t.Fatalf("unexpected row error: %v", rowErr)
		}
		if rec.Month.IsNumeric() || rec.Month.Label != "13" {
			t.Errorf("expected label 13, got %+v", rec.Month)
		}
	})

	t.Run("blank_label", func(t *testing.T) {
		_, rowErr := v.Validate(4, row("   ", "1"))
		if rowErr == nil || rowErr.Reason != ReasonInvalidMonth {
			t.Fatalf("expected invalid month, got %v", rowErr)
		}
	})

	t.Run("label_length_counts_characters", func(t *testing.T) {
		label := strings.Repeat("é", MaxLabelLength)
		rec, rowErr := v.Validate(2, row(label, "1"))
		if rowErr != nil {
			t.Fatalf("unexpected row error: %v", rowErr)
		}
		if rec.Month.Label != label {
			t.Errorf("expected label kept, got %q", rec.Month.Label)
		}

		_, rowErr = v.Validate(2, row(label+"é", "1"))
		if rowErr == nil || rowErr.Reason != ReasonInvalidMonth {
			t.Fatalf("expected invalid month for %d characters, got %v", MaxLabelLength+1, rowErr)
		}
	})

	t.Run("label_too_long", func(t *testing.T) {
		_, rowErr := v.Validate(4, row("this label is far too long to be a month", "1"))
		if rowErr == nil || rowErr.Reason != ReasonInvalidMonth {
			t.Fatalf("expected invalid month, got %v", rowErr)
		}
	})
}

func TestRowError_Error(t *testing.T) {
	cases := map[string]*RowError{
		"Row 3: Invalid month '13'":  {Row: 3, Reason: ReasonInvalidMonth, Value: "13"},
		"Row 4: Invalid amount '-5'": {Row: 4, Reason: ReasonInvalidAmount, Value: "-5"},
		"Row 5: Invalid data format": {Row: 5, Reason: ReasonMalformedRow, Value: "x"},
	}
	for want, rowErr := range cases {
		if got := rowErr.Error(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestMonth_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Month{NumericMonth(4), LabelMonth("April")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[4,"April"]` {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestPolicy_MonthMode(t *testing.T) {
	if PolicyUpsert.MonthMode() != MonthNumeric {
		t.Error("expected upsert to use numeric months")
	}
	if PolicyReplace.MonthMode() != MonthLabel {
		t.Error("expected replace to use month labels")
	}
	if Policy("merge").Valid() {
		t.Error("expected unknown policy to be invalid")
	}
}

func TestValidate_ExponentInputIsCheap(t *testing.T) {
	v := NewValidator(MonthNumeric)

	start := time.Now()
	for _, r := range []map[string]string{
		row("1", "1e20000000"),
		row("1", "-1e-20000000"),
		row("1e20000000", "5"),
		row("1e-2000000000", "5"),
	} {
		if _, rowErr := v.Validate(2, r); rowErr == nil {
			t.Errorf("expected row error for %v", r)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("validating exponent input took %s", elapsed)
	}
}

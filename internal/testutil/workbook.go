package testutil

import (
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook returns an .xlsx file whose first sheet holds rows starting
// at A1. Pass the header as the first row.
func BuildWorkbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		values := row
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &values); err != nil {
			t.Fatalf("failed to write workbook row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to encode workbook: %v", err)
	}
	return buf.Bytes()
}

// MonthlyWorkbook builds a workbook with a Month/Amount header followed by
// the given (month, amount) pairs.
func MonthlyWorkbook(t *testing.T, pairs ...[2]interface{}) []byte {
	t.Helper()

	rows := [][]interface{}{{"Month", "Amount"}}
	for _, p := range pairs {
		rows = append(rows, []interface{}{p[0], p[1]})
	}
	return BuildWorkbook(t, rows...)
}

// Package spreadsheet reads uploaded workbooks as a stream of header-keyed rows.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadable is returned when the input cannot be parsed as a workbook.
var ErrUnreadable = errors.New("spreadsheet: unreadable file")

// Row is one data row of a sheet.
type Row struct {
	// Number is the 1-based row number shown by spreadsheet applications.
	Number int
	// Values maps each header name to the raw cell text; missing cells are "".
	Values map[string]string
}

// Sheet iterates the data rows of a workbook's first worksheet. It is
// one-shot: once exhausted it cannot be rewound.
type Sheet struct {
	file    *excelize.File
	rows    *excelize.Rows
	header  []string
	number  int
	current Row
	err     error
}

var rawValues = excelize.Options{RawCellValue: true}

// Open parses r as an OOXML workbook and reads the header row of its first
// worksheet. The header is the first non-blank row.
func Open(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	s := &Sheet{file: f, rows: rows}
	for rows.Next() {
		s.number++
		cols, err := rows.Columns(rawValues)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if isBlank(cols) {
			continue
		}
		s.header = make([]string, len(cols))
		for i, c := range cols {
			s.header[i] = strings.TrimSpace(c)
		}
		break
	}
	if err := rows.Error(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return s, nil
}

// Header returns the trimmed header names in column order. It is empty for
// a sheet without any non-blank row.
func (s *Sheet) Header() []string {
	return s.header
}

// Next advances to the next non-blank data row.
func (s *Sheet) Next() bool {
	if s.err != nil || s.header == nil {
		return false
	}

	for s.rows.Next() {
		s.number++
		cols, err := s.rows.Columns(rawValues)
		if err != nil {
			s.err = fmt.Errorf("%w: row %d: %v", ErrUnreadable, s.number, err)
			return false
		}
		if isBlank(cols) {
			continue
		}
		s.current = Row{Number: s.number, Values: s.mapRow(cols)}
		return true
	}

	if err := s.rows.Error(); err != nil {
		s.err = fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return false
}

// Row returns the row read by the last successful call to Next.
func (s *Sheet) Row() Row {
	return s.current
}

// Err returns the error that stopped iteration, if any.
func (s *Sheet) Err() error {
	return s.err
}

// Close releases the workbook.
func (s *Sheet) Close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return rowsErr
}

func (s *Sheet) mapRow(cols []string) map[string]string {
	values := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if name == "" {
			continue
		}
		if _, seen := values[name]; seen {
			continue
		}
		if i < len(cols) {
			values[name] = cols[i]
		} else {
			values[name] = ""
		}
	}
	return values
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

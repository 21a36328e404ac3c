package dataset

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoDataSheet is returned when no worksheet carries a training export.
var ErrNoDataSheet = errors.New("no worksheet with training data")

// ReadXLSX reads export rows from a workbook file. When sheet is empty the
// first worksheet whose header has the required columns is used.
func ReadXLSX(path, sheet string) ([]map[string]string, error) {
	rows, err := readXLSXRows(path, sheet)
	if err != nil {
		return nil, err
	}
	return fieldsOf(rows), nil
}

// ReadXLSXFrom reads export rows from a workbook stream.
func ReadXLSXFrom(r io.Reader, sheet string) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := readWorkbook(f, sheet)
	if err != nil {
		return nil, err
	}
	return fieldsOf(rows), nil
}

func readXLSXRows(path, sheet string) ([]sourceRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) ([]sourceRow, error) {
	candidates := f.GetSheetList()
	if sheet != "" {
		candidates = []string{sheet}
	}

	for _, name := range candidates {
		rows, err := f.GetRows(name)
		if err != nil {
			if sheet != "" {
				return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
			}
			continue
		}

		start := firstNonBlank(rows)
		if start < 0 {
			continue
		}
		keys, err := headerKeys(rows[start])
		if err != nil {
			if sheet != "" {
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
			continue
		}

		dates, err := newDateColumn(f, name, keys)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		var out []sourceRow
		for i := start + 1; i < len(rows); i++ {
			if isBlank(rows[i]) {
				continue
			}
			fields := rowMap(keys, rows[i])
			if v, ok := dates.value(i); ok {
				fields[FieldEnrolledOn] = v
			}
			out = append(out, sourceRow{line: i + 1, fields: fields})
		}
		return out, nil
	}

	if sheet != "" {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoHeader)
	}
	return nil, ErrNoDataSheet
}

// dateColumn reads enrollment cells unformatted. Excel stores dates as
// serial day numbers, which GetRows renders in the cell's locale format.
type dateColumn struct {
	col      int
	raw      [][]string
	date1904 bool
}

func newDateColumn(f *excelize.File, sheet string, keys []string) (*dateColumn, error) {
	col := slices.Index(keys, FieldEnrolledOn)
	if col < 0 {
		return &dateColumn{col: -1}, nil
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dc := &dateColumn{col: col, raw: raw}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dc.date1904 = *props.Date1904
	}
	return dc, nil
}

// value returns the enrollment timestamp of sheet row i when the cell holds
// a date serial.
func (dc *dateColumn) value(i int) (string, bool) {
	if dc.col < 0 || i >= len(dc.raw) || dc.col >= len(dc.raw[i]) {
		return "", false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(dc.raw[i][dc.col]), 64)
	if err != nil || serial <= 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, dc.date1904)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02 15:04:05"), true
}

// firstNonBlank returns the index of the first row with content, or -1.
func firstNonBlank(rows [][]string) int {
	for i, row := range rows {
		if !isBlank(row) {
			return i
		}
	}
	return -1
}

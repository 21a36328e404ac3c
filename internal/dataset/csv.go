package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoHeader is returned when an export has no header row.
	ErrNoHeader = errors.New("no header row")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// requiredColumns must appear in the header of every export.
var requiredColumns = []string{FieldCourse, FieldStatus}

// utf8BOM is written by spreadsheet tools in front of the first header.
const utf8BOM = "\uFEFF"

// sourceRow is one data row of an export and the line it was read from.
type sourceRow struct {
	line   int
	fields map[string]string
}

// ReadCSV reads export rows from a CSV reader. Each row is keyed by the
// canonical field name where the header is recognised, by the raw
// header text otherwise.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	rows, err := readCSVRows(r)
	if err != nil {
		return nil, err
	}
	return fieldsOf(rows), nil
}

// readCSVRows reads the data rows of a CSV export with their file line
// numbers. Blank rows are skipped.
func readCSVRows(r io.Reader) ([]sourceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	keys, err := headerKeys(header)
	if err != nil {
		return nil, err
	}

	var rows []sourceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, sourceRow{line: line, fields: rowMap(keys, record)})
	}

	return rows, nil
}

func fieldsOf(rows []sourceRow) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		out[i] = row.fields
	}
	return out
}

// WriteCSV writes records as an export with the canonical header.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CanonicalFields); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(CanonicalFields))
	for i, rec := range records {
		raw := rec.Raw()
		for j, field := range CanonicalFields {
			row[j] = raw[field]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// headerKeys maps header cells to row keys and verifies required columns.
func headerKeys(header []string) ([]string, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	keys := make([]string, len(header))
	seen := make(map[string]bool)
	for i, col := range header {
		if canonical := CanonicalColumn(col); canonical != "" {
			keys[i] = canonical
		} else {
			keys[i] = strings.TrimSpace(col)
		}
		seen[keys[i]] = true
	}

	for _, col := range requiredColumns {
		if !seen[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return keys, nil
}

// rowMap zips a record with the header keys. Short rows yield empty values.
func rowMap(keys, record []string) map[string]string {
	row := make(map[string]string, len(keys))
	for i, key := range keys {
		if key == "" {
			continue
		}
		if i < len(record) {
			row[key] = strings.TrimSpace(record[i])
		} else {
			row[key] = ""
		}
	}
	return row
}

// isBlank reports whether every cell of a record is empty.
func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CanonicalColumn maps a header cell to its canonical field name, or ""
// when the column is not one the dashboard reads. Matching ignores case,
// underscores, dashes and repeated spaces.
func CanonicalColumn(name string) string {
	name = strings.TrimPrefix(name, utf8BOM)
	name = strings.ToLower(name)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")

	switch name {
	case "course", "course name":
		return FieldCourse
	case "status":
		return FieldStatus
	case "department", "dept":
		return FieldDepartment
	case "first name", "firstname":
		return FieldFirstName
	case "last name", "lastname":
		return FieldLastName
	case "average score", "avg score", "score":
		return FieldAverageScore
	case "enrolled on", "enrolled", "enrollment date":
		return FieldEnrolledOn
	default:
		return ""
	}
}

package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrNotFound is returned when no dataset file can be located.
	ErrNotFound = errors.New("no training dataset found")
)

// Dataset is a loaded training export.
type Dataset struct {
	// Path is the file the dataset was loaded from.
	Path string

	// Records holds one normalized record per data row, in file order.
	Records []Record

	// Issues lists data quality findings, by source line.
	Issues []RowIssue
}

// FromRows normalizes raw rows into a dataset and diagnoses each row. Rows
// are numbered as lines of an export whose header is line 1.
func FromRows(rows []map[string]string) *Dataset {
	src := make([]sourceRow, len(rows))
	for i, raw := range rows {
		src[i] = sourceRow{line: i + 2, fields: raw}
	}
	return fromSourceRows(src)
}

func fromSourceRows(rows []sourceRow) *Dataset {
	ds := &Dataset{Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		ds.Records = append(ds.Records, Normalize(row.fields))
		for _, issue := range Diagnose(row.fields) {
			ds.Issues = append(ds.Issues, RowIssue{Row: row.line, Issue: issue})
		}
	}
	return ds
}

// Load reads a dataset file. The format is chosen by extension; sheet
// selects a worksheet for XLSX files and is ignored for CSV.
func Load(path, sheet string) (*Dataset, error) {
	var (
		rows []sourceRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		defer file.Close()
		rows, err = readCSVRows(file)
	case ".xlsx", ".xlsm":
		rows, err = readXLSXRows(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	ds := fromSourceRows(rows)
	ds.Path = path
	return ds, nil
}

// Save writes the records to a CSV file.
func (ds *Dataset) Save(path string) error {
	if path == "" {
		path = ds.Path
	}
	if path == "" {
		return fmt.Errorf("no path specified for saving dataset")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, ds.Records); err != nil {
		return err
	}

	ds.Path = path
	return nil
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.Records)
}

// FindDataset searches for a dataset file named name starting from dir and
// walking up to the filesystem root. Absolute names are checked directly.
func FindDataset(dir, name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	candidates := []string{
		name,
		filepath.Join("data", name),
		filepath.Join(".tlcdash", name),
	}

	for {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Package export renders a report snapshot to files: an Excel workbook, a
// JSON document, a static HTML dashboard or the filtered rows as CSV.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatXLSX, FormatJSON, FormatHTML, FormatCSV}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "htm" {
		ext = "html"
	}
	return ParseFormat(ext)
}

// Options control rendering.
type Options struct {
	// Placeholder replaces undefined metrics in text renderings.
	Placeholder string
	// Title heads the HTML page.
	Title string
	// GeneratedAt is stamped into the export. Zero means the snapshot time.
	GeneratedAt time.Time
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		Placeholder: report.Placeholder,
		Title:       "TLC Compliance Dashboard",
	}
}

func (o Options) generatedAt(snap *report.Snapshot) time.Time {
	if !o.GeneratedAt.IsZero() {
		return o.GeneratedAt
	}
	return snap.ComputedAt
}

// Write renders snap in format f.
func Write(w io.Writer, f Format, snap *report.Snapshot, opts Options) error {
	if snap == nil {
		return errors.New("no snapshot to export")
	}
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, snap, opts)
	case FormatJSON:
		return WriteJSON(w, snap, opts)
	case FormatHTML:
		return WriteHTML(w, snap, opts)
	case FormatCSV:
		return WriteCSV(w, snap)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteFile renders snap to path, creating parent directories. The output
// is written to a temporary file and renamed into place, so a failed
// render leaves any existing file untouched.
func WriteFile(path string, f Format, snap *report.Snapshot, opts Options) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, f, snap, opts); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set export file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// WriteCSV writes the snapshot's filtered rows in the ingestion layout.
func WriteCSV(w io.Writer, snap *report.Snapshot) error {
	if err := dataset.WriteCSV(w, snap.Rows); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FLFTraining/TLC-Dashboard/internal/export"
	"github.com/FLFTraining/TLC-Dashboard/internal/logger"
)

var (
	exportFilters filterFlags
	exportFormat  string
	exportOut     string
	exportTitle   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard views to a file",
	Long: `Render the filtered views to a file.

Formats:
  xlsx  workbook with KPI, Summary, Courses, Departments and Individuals sheets
  json  one document with the criteria and all four views
  html  static dashboard page
  csv   the filtered rows in the ingestion layout

Without --format the format is taken from the --out extension.`,
	Example: `  tlcdash export --out report.xlsx
  tlcdash export --format json --out - --department Legal`,
	RunE: runExport,
}

func init() {
	exportFilters.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: xlsx, json, html, csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, or - for stdout")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "HTML page title")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := exportFileFormat()
	if err != nil {
		return err
	}

	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	snap, err := filteredSnapshot(w, &exportFilters)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Placeholder = w.placeholder()
	if exportTitle != "" {
		opts.Title = exportTitle
	}

	if exportOut == "-" {
		return export.Write(cmd.OutOrStdout(), format, snap, opts)
	}

	if err := export.WriteFile(exportOut, format, snap, opts); err != nil {
		return err
	}

	logger.Info().
		Str("path", exportOut).
		Str("format", string(format)).
		Int("rows", len(snap.Rows)).
		Msg("export written")
	cmd.Printf("Wrote %s (%s, %d rows, %s)\n", exportOut, format, len(snap.Rows), snap.Criteria)
	return nil
}

func exportFileFormat() (export.Format, error) {
	if exportFormat != "" {
		return export.ParseFormat(exportFormat)
	}
	if exportOut == "-" {
		return "", fmt.Errorf("--format is required when writing to stdout")
	}
	return export.FormatFromPath(exportOut)
}

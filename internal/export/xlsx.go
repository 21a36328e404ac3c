package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// Sheet names of the workbook, in tab order.
const (
	SheetKPI         = "KPI"
	SheetSummary     = "Summary"
	SheetCourses     = "Courses"
	SheetDepartments = "Departments"
	SheetIndividuals = "Individuals"
)

// sheet is one table of the workbook.
type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

// WriteXLSX writes the four views as a workbook. Rates and scores are
// written as display strings so undefined values read as the placeholder.
func WriteXLSX(w io.Writer, snap *report.Snapshot, opts Options) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range workbookSheets(snap, opts) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func workbookSheets(snap *report.Snapshot, opts Options) []sheet {
	v := snap.Views
	ph := opts.Placeholder
	rate := func(m report.Metric) string { return percentText(m, ph) }
	score := func(m report.Metric) string { return m.Format(1, ph) }

	kpi := sheet{
		name:   SheetKPI,
		header: []any{"Metric", "Value"},
		rows: [][]any{
			{"Generated", opts.generatedAt(snap).Format("2006-01-02 15:04")},
			{"Filter", snap.Criteria.String()},
			{"Distinct Courses", v.KPI.DistinctCourses},
			{"Total Assignments", v.KPI.TotalAssignments},
			{"Total Completed", v.KPI.TotalCompleted},
			{"Compliance Rate", rate(v.KPI.ComplianceRate)},
			{"Average Score", score(v.KPI.AverageScore)},
		},
		widths: []float64{20, 28},
	}

	summary := sheet{
		name:   SheetSummary,
		header: []any{"Course", "Assigned", "Completed", "Compliance Rate", "Average Score"},
		widths: []float64{28, 10, 10, 16, 14},
	}
	courses := sheet{
		name:   SheetCourses,
		header: []any{"Course", "Type", "Assigned", "Completed", "Compliance Rate", "Status"},
		widths: []float64{28, 8, 10, 10, 16, 18},
	}
	for _, c := range v.Courses {
		summary.rows = append(summary.rows, []any{
			c.Course, c.Assigned, c.Completed, rate(c.ComplianceRate), score(c.AverageScore),
		})
		courses.rows = append(courses.rows, []any{
			c.Course, c.Type, c.Assigned, c.Completed, rate(c.ComplianceRate), statusText(c.Status, ph),
		})
	}

	departments := sheet{
		name:   SheetDepartments,
		header: []any{"Department", "Assigned", "Completed", "Compliance Rate", "Status"},
		widths: []float64{24, 10, 10, 16, 18},
	}
	for _, d := range v.Departments {
		departments.rows = append(departments.rows, []any{
			d.Department, d.Assigned, d.Completed, rate(d.ComplianceRate), statusText(d.Status, ph),
		})
	}

	individuals := sheet{
		name:   SheetIndividuals,
		header: []any{"First Name", "Last Name", "Department", "Course", "Status", "Average Score"},
		widths: []float64{14, 16, 20, 28, 14, 14},
	}
	for _, r := range v.Individuals {
		individuals.rows = append(individuals.rows, []any{
			r.FirstName, r.LastName, r.Department, r.Course, string(r.Status), score(r.AverageScore),
		})
	}

	return []sheet{kpi, summary, courses, departments, individuals}
}

// percentText renders a rate as "66.7%", or the placeholder.
func percentText(m report.Metric, placeholder string) string {
	if !m.Valid {
		return placeholder
	}
	return m.Format(1, placeholder) + "%"
}

// statusText renders a classification label, or the placeholder for an
// undefined rate.
func statusText(c report.Classification, placeholder string) string {
	if c.Tier == report.TierNone {
		return placeholder
	}
	return c.Label
}

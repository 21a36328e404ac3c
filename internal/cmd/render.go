package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/FLFTraining/TLC-Dashboard/internal/output"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

const screenWidth = 80

// display holds the settings every view renderer needs.
type display struct {
	placeholder string
	thresholds  report.Thresholds
}

func (w *workspace) display() display {
	return display{placeholder: w.placeholder(), thresholds: w.thresholds()}
}

func (d display) rate(m report.Metric) string {
	return output.FormatRate(m, d.thresholds, d.placeholder)
}

func (d display) score(m report.Metric) string {
	return output.FormatScore(m, d.placeholder)
}

func renderKPI(w io.Writer, snap *report.Snapshot, d display) {
	k := snap.Views.KPI

	fmt.Fprintln(w, output.Header("Training Compliance", screenWidth))
	fmt.Fprintf(w, "Filter: %s\n\n", snap.Criteria)
	fmt.Fprintf(w, "Courses:        %d\n", k.DistinctCourses)
	fmt.Fprintf(w, "Assignments:    %d\n", k.TotalAssignments)
	fmt.Fprintf(w, "Completed:      %d\n", k.TotalCompleted)
	fmt.Fprintf(w, "Compliance:     %s  %s\n", output.ProgressBar(k.ComplianceRate, 30, d.thresholds), d.rate(k.ComplianceRate))
	fmt.Fprintf(w, "Average score:  %s\n", d.score(k.AverageScore))
	fmt.Fprintln(w)
}

func renderSummary(w io.Writer, snap *report.Snapshot, d display) {
	renderKPI(w, snap, d)

	fmt.Fprintln(w, output.SubHeader("Course Summary", screenWidth))
	if emptyView(w, len(snap.Views.Courses)) {
		return
	}

	table := output.NewTable("Course", "Assigned", "Completed", "Compliance", "Avg Score").AlignRight(1, 2, 3, 4)
	for _, c := range snap.Views.Courses {
		table.AddRow(c.Course, strconv.Itoa(c.Assigned), strconv.Itoa(c.Completed), d.rate(c.ComplianceRate), d.score(c.AverageScore))
	}
	fmt.Fprint(w, table.RenderCompact())
}

func renderCourses(w io.Writer, snap *report.Snapshot, d display) {
	fmt.Fprintln(w, output.Header("Courses", screenWidth))
	if emptyView(w, len(snap.Views.Courses)) {
		return
	}

	table := output.NewTable("Course", "Type", "Assigned", "Completed", "Compliance", "Avg Score", "Status").AlignRight(2, 3, 4, 5)
	for _, c := range snap.Views.Courses {
		table.AddRow(
			c.Course,
			c.Type,
			strconv.Itoa(c.Assigned),
			strconv.Itoa(c.Completed),
			d.rate(c.ComplianceRate),
			d.score(c.AverageScore),
			output.FormatClassification(c.Status, d.placeholder),
		)
	}
	fmt.Fprint(w, table.RenderCompact())
	fmt.Fprintf(w, "%d courses\n", table.Len())
}

func renderDepartments(w io.Writer, snap *report.Snapshot, d display) {
	fmt.Fprintln(w, output.Header("Departments", screenWidth))
	if emptyView(w, len(snap.Views.Departments)) {
		return
	}

	table := output.NewTable("Department", "Assigned", "Completed", "Compliance", "Status").AlignRight(1, 2, 3)
	for _, dept := range snap.Views.Departments {
		table.AddRow(
			dept.Department,
			strconv.Itoa(dept.Assigned),
			strconv.Itoa(dept.Completed),
			d.rate(dept.ComplianceRate),
			output.FormatClassification(dept.Status, d.placeholder),
		)
	}
	fmt.Fprint(w, table.RenderCompact())
	fmt.Fprintf(w, "%d departments\n", table.Len())
}

func renderIndividuals(w io.Writer, snap *report.Snapshot, d display) {
	fmt.Fprintln(w, output.Header("Individuals", screenWidth))
	if emptyView(w, len(snap.Views.Individuals)) {
		return
	}

	table := output.NewTable("Name", "Department", "Course", "Status", "Avg Score").AlignRight(4)
	for _, r := range snap.Views.Individuals {
		dept := r.Department
		if dept == "" {
			dept = d.placeholder
		}
		table.AddRow(
			output.TruncateCell(r.Name(), 32),
			dept,
			r.Course,
			output.FormatStatus(r.Status, d.placeholder),
			d.score(r.AverageScore),
		)
	}
	fmt.Fprint(w, table.RenderCompact())
	fmt.Fprintf(w, "%d assignments\n", table.Len())
}

// emptyView prints a notice and returns true when a view has no rows.
func emptyView(w io.Writer, n int) bool {
	if n > 0 {
		return false
	}
	fmt.Fprintln(w, "No rows match the current filter.")
	return true
}

// views maps view names to renderers for the shell's show command.
var views = map[string]func(io.Writer, *report.Snapshot, display){
	"kpi":         renderKPI,
	"summary":     renderSummary,
	"courses":     renderCourses,
	"departments": renderDepartments,
	"individuals": renderIndividuals,
}

package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// htmlPage is the data handed to the dashboard template.
type htmlPage struct {
	Title       string
	GeneratedAt string
	Filter      string
	Views       report.Views
	Placeholder string
}

// WriteHTML writes a self-contained dashboard page.
func WriteHTML(w io.Writer, snap *report.Snapshot, opts Options) error {
	page := htmlPage{
		Title:       opts.Title,
		GeneratedAt: opts.generatedAt(snap).Format("2006-01-02 15:04"),
		Filter:      snap.Criteria.String(),
		Views:       snap.Views,
		Placeholder: opts.Placeholder,
	}
	if page.Title == "" {
		page.Title = DefaultOptions().Title
	}

	if err := dashboardTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML export: %w", err)
	}
	return nil
}

// tierClass maps a tier to the badge colour class.
func tierClass(t report.Tier) string {
	switch t {
	case report.TierTop:
		return "green"
	case report.TierMid:
		return "yellow"
	case report.TierLow:
		return "red"
	default:
		return "none"
	}
}

// statusClass colours an assignment status.
func statusClass(s dataset.Status) string {
	switch s {
	case dataset.StatusCompleted:
		return "green"
	case dataset.StatusInProgress:
		return "yellow"
	case dataset.StatusNotStarted:
		return "red"
	default:
		return "none"
	}
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"percent":     percentText,
	"status":      statusText,
	"tierClass":   tierClass,
	"statusClass": statusClass,
	"score": func(m report.Metric, placeholder string) string {
		return m.Format(1, placeholder)
	},
}).Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0; }
.meta { color: #666; margin-bottom: 1.5rem; }
.kpis { display: flex; gap: 1rem; margin-bottom: 2rem; }
.kpi { border: 1px solid #ddd; border-radius: 6px; padding: 0.75rem 1.25rem; }
.kpi .value { font-size: 1.6rem; font-weight: bold; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ddd; padding: 0.3rem 0.7rem; text-align: left; }
th { background: #f4f4f4; }
td.num { text-align: right; }
.badge { padding: 0.1rem 0.5rem; border-radius: 4px; }
.green { background: #d4edda; color: #155724; }
.yellow { background: #fff3cd; color: #856404; }
.red { background: #f8d7da; color: #721c24; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; {{.Filter}}</p>

<div class="kpis">
  <div class="kpi"><div>Distinct Courses</div><div class="value">{{.Views.KPI.DistinctCourses}}</div></div>
  <div class="kpi"><div>Total Assignments</div><div class="value">{{.Views.KPI.TotalAssignments}}</div></div>
  <div class="kpi"><div>Total Completed</div><div class="value">{{.Views.KPI.TotalCompleted}}</div></div>
  <div class="kpi"><div>Compliance Rate</div><div class="value">{{percent .Views.KPI.ComplianceRate $.Placeholder}}</div></div>
  <div class="kpi"><div>Average Score</div><div class="value">{{score .Views.KPI.AverageScore $.Placeholder}}</div></div>
</div>

<h2>Courses</h2>
<table id="courses">
<tr><th>Course</th><th>Type</th><th>Assigned</th><th>Completed</th><th>Compliance Rate</th><th>Average Score</th><th>Status</th></tr>
{{- range .Views.Courses}}
<tr><td>{{.Course}}</td><td>{{.Type}}</td><td class="num">{{.Assigned}}</td><td class="num">{{.Completed}}</td><td class="num">{{percent .ComplianceRate $.Placeholder}}</td><td class="num">{{score .AverageScore $.Placeholder}}</td><td><span class="badge {{tierClass .Status.Tier}}">{{status .Status $.Placeholder}}</span></td></tr>
{{- end}}
</table>

<h2>Departments</h2>
<table id="departments">
<tr><th>Department</th><th>Assigned</th><th>Completed</th><th>Compliance Rate</th><th>Status</th></tr>
{{- range .Views.Departments}}
<tr><td>{{.Department}}</td><td class="num">{{.Assigned}}</td><td class="num">{{.Completed}}</td><td class="num">{{percent .ComplianceRate $.Placeholder}}</td><td><span class="badge {{tierClass .Status.Tier}}">{{status .Status $.Placeholder}}</span></td></tr>
{{- end}}
</table>

<h2>Individuals</h2>
<table id="individuals">
<tr><th>Name</th><th>Department</th><th>Course</th><th>Status</th><th>Average Score</th></tr>
{{- range .Views.Individuals}}
<tr><td>{{.Name}}</td><td>{{.Department}}</td><td>{{.Course}}</td><td><span class="badge {{statusClass .Status}}">{{.Status}}</span></td><td class="num">{{score .AverageScore $.Placeholder}}</td></tr>
{{- end}}
</table>
</body>
</html>
`

package report_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
	"github.com/FLFTraining/TLC-Dashboard/internal/testutil"
)

func TestCourseScenarioTLC101(t *testing.T) {
	rows := []dataset.Record{
		dataset.Normalize(map[string]string{"Course": "TLC101", "Status": "Completed", "Average score": "90"}),
		dataset.Normalize(map[string]string{"Course": "TLC101", "Status": "Not Started", "Average score": ""}),
	}

	courses := report.NewAggregator().Courses(rows)
	require.Len(t, courses, 1)

	c := courses[0]
	assert.Equal(t, "TLC101", c.Course)
	assert.Equal(t, "TLC", c.Type)
	assert.Equal(t, 2, c.Assigned)
	assert.Equal(t, 1, c.Completed)
	assert.Equal(t, "50.0", c.ComplianceRate.String())
	assert.Equal(t, "90.0", c.AverageScore.String())
	assert.Equal(t, "Adequate", c.Status.Label)
	assert.Equal(t, report.TierMid, c.Status.Tier)
}

func TestKPIEmptyRowSet(t *testing.T) {
	kpi := report.NewAggregator().KPI(nil)

	assert.Equal(t, 0, kpi.DistinctCourses)
	assert.Equal(t, 0, kpi.TotalAssignments)
	assert.Equal(t, 0, kpi.TotalCompleted)
	assert.False(t, kpi.ComplianceRate.Valid)
	assert.False(t, kpi.AverageScore.Valid)
	assert.Equal(t, report.Placeholder, kpi.ComplianceRate.String())
	assert.NotContains(t, kpi.ComplianceRate.String(), "NaN")
}

func TestKPISampleRecords(t *testing.T) {
	kpi := report.NewAggregator().KPI(testutil.SampleRecords())

	assert.Equal(t, 3, kpi.DistinctCourses)
	assert.Equal(t, 8, kpi.TotalAssignments, "rows without a course still count")
	assert.Equal(t, 4, kpi.TotalCompleted)
	assert.Equal(t, "50.0", kpi.ComplianceRate.String())
	assert.Equal(t, "85.0", kpi.AverageScore.String())
}

func TestKPIAverageIgnoresUnscoredCompletions(t *testing.T) {
	rows := []dataset.Record{
		testutil.NewTestRecord(testutil.WithScore(70)),
		testutil.NewTestRecord(testutil.WithoutScore()),
		testutil.NewTestRecord(testutil.WithoutScore()),
	}

	kpi := report.NewAggregator().KPI(rows)
	assert.Equal(t, "70.0", kpi.AverageScore.String())
}

func TestKPINoScoredCompletions(t *testing.T) {
	rows := []dataset.Record{
		testutil.NewTestRecord(testutil.WithStatus(dataset.StatusNotStarted), testutil.WithScore(40)),
	}

	kpi := report.NewAggregator().KPI(rows)
	assert.False(t, kpi.AverageScore.Valid, "scores of incomplete rows are ignored")
	assert.Equal(t, "0.0", kpi.ComplianceRate.String())
}

func TestCoursesSampleRecords(t *testing.T) {
	courses := report.NewAggregator().Courses(testutil.SampleRecords())
	require.Len(t, courses, 3)

	// First-seen order
	assert.Equal(t, []string{"TLC101", "CE200", "TLC300"},
		[]string{courses[0].Course, courses[1].Course, courses[2].Course})

	tlc101 := courses[0]
	assert.Equal(t, 3, tlc101.Assigned)
	assert.Equal(t, 2, tlc101.Completed)
	assert.Equal(t, "66.7", tlc101.ComplianceRate.String())
	assert.Equal(t, "85.0", tlc101.AverageScore.String())
	assert.Equal(t, "Adequate", tlc101.Status.Label)

	ce200 := courses[1]
	assert.Equal(t, "CE", ce200.Type)
	assert.Equal(t, 3, ce200.Assigned)
	assert.Equal(t, "0.0", ce200.ComplianceRate.String())
	assert.Equal(t, report.Placeholder, ce200.AverageScore.String())
	assert.Equal(t, "Needs Attention", ce200.Status.Label)

	tlc300 := courses[2]
	assert.Equal(t, "100.0", tlc300.ComplianceRate.String())
	assert.False(t, tlc300.AverageScore.Valid)
	assert.Equal(t, "Good", tlc300.Status.Label)
}

func TestDepartmentsSampleRecords(t *testing.T) {
	depts := report.NewAggregator().Departments(testutil.SampleRecords())
	require.Len(t, depts, 2)

	assert.Equal(t, "Legal", depts[0].Department)
	assert.Equal(t, 4, depts[0].Assigned)
	assert.Equal(t, 2, depts[0].Completed)
	assert.Equal(t, "50.0", depts[0].ComplianceRate.String())
	assert.Equal(t, "Good", depts[0].Status.Label, "department labels differ from course labels")

	assert.Equal(t, "Intake", depts[1].Department)
	assert.Equal(t, "33.3", depts[1].ComplianceRate.String())
	assert.Equal(t, "Needs Attention", depts[1].Status.Label)
}

func TestIndividualsDropIncompleteRows(t *testing.T) {
	rows := report.Individuals(testutil.SampleRecords())

	// Row without course and row without last name are dropped.
	require.Len(t, rows, 6)
	for _, r := range rows {
		assert.NotEmpty(t, r.FirstName)
		assert.NotEmpty(t, r.LastName)
		assert.NotEmpty(t, r.Course)
	}

	assert.Equal(t, "Ann Lee", rows[0].Name())
	assert.Equal(t, "90", rows[0].AverageScore.Format(-1, report.Placeholder))
	assert.True(t, rows[0].Completed)
	assert.Equal(t, report.Placeholder, rows[2].AverageScore.String())
	assert.Equal(t, dataset.StatusInProgress, rows[2].Status)
}

func TestAggregateConsistency(t *testing.T) {
	rows := testutil.SampleRecords()
	views := report.NewAggregator().Aggregate(rows)

	withCourse := 0
	completed := 0
	for _, r := range rows {
		if r.HasCourse() {
			withCourse++
		}
		if r.Status == "Completed" {
			completed++
		}
	}

	sum := 0
	for _, c := range views.Courses {
		sum += c.Assigned
	}
	assert.Equal(t, withCourse, sum, "sum of course assignments")
	assert.Equal(t, completed, views.KPI.TotalCompleted)

	rates := []report.Metric{views.KPI.ComplianceRate}
	for _, c := range views.Courses {
		rates = append(rates, c.ComplianceRate)
	}
	for _, d := range views.Departments {
		rates = append(rates, d.ComplianceRate)
	}
	for _, rate := range rates {
		if !rate.Valid {
			continue
		}
		assert.False(t, math.IsNaN(rate.Value))
		assert.GreaterOrEqual(t, rate.Value, 0.0)
		assert.LessOrEqual(t, rate.Value, 100.0)
	}
}

func TestCompletionIsExactMatch(t *testing.T) {
	rows := []dataset.Record{
		testutil.NewTestRecord(testutil.WithStatus("Not Completed")),
		testutil.NewTestRecord(testutil.WithStatus("completed")),
		testutil.NewTestRecord(),
	}

	kpi := report.NewAggregator().KPI(rows)
	assert.Equal(t, 1, kpi.TotalCompleted)
}

func TestCourseTypesOf(t *testing.T) {
	ct := report.DefaultCourseTypes()
	assert.Equal(t, "TLC", ct.Of("TLC101"))
	assert.Equal(t, "CE", ct.Of("Ethics CE"))
	assert.Equal(t, "CE", ct.Of("tlc101"), "prefix match is case-sensitive")

	assert.Equal(t, "Other", report.CourseTypes{Match: "M", Other: "Other"}.Of("TLC101"),
		"empty prefix never matches")
}

func TestDepartmentNames(t *testing.T) {
	assert.Equal(t, []string{"Intake", "Legal"}, report.DepartmentNames(testutil.SampleRecords()))
	assert.Empty(t, report.DepartmentNames(nil))
}

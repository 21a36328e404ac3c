package report_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
	"github.com/FLFTraining/TLC-Dashboard/internal/report"
	"github.com/FLFTraining/TLC-Dashboard/internal/testutil"
)

func mustCriteria(t *testing.T, start, end, dept, name string) report.Criteria {
	t.Helper()
	c, err := report.ParseCriteria(start, end, dept, name)
	require.NoError(t, err)
	return c
}

func names(rows []dataset.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.FullName() + "/" + r.Course
	}
	return out
}

func TestFilterDateRangeIsInclusiveByDay(t *testing.T) {
	rows := []dataset.Record{
		testutil.NewTestRecord(testutil.WithName("A", "In"), testutil.WithEnrolled("2025-04-15 00:00:00")),
		testutil.NewTestRecord(testutil.WithName("B", "Out"), testutil.WithEnrolled("2025-04-25 10:00:00")),
		testutil.NewTestRecord(testutil.WithName("C", "End"), testutil.WithEnrolled("2025-04-20 23:59:00")),
		testutil.NewTestRecord(testutil.WithName("D", "None"), testutil.WithEnrolled("")),
	}

	got := report.Filter(rows, mustCriteria(t, "2025-04-10", "2025-04-20", "", ""))
	assert.Equal(t, []string{"A In/TLC101", "C End/TLC101"}, names(got))
}

func TestFilterSampleDateRange(t *testing.T) {
	got := report.Filter(testutil.SampleRecords(), mustCriteria(t, "2025-04-10", "2025-04-20", "", ""))
	assert.Equal(t, []string{
		"Bob Ray/TLC101",
		"Joanna Diaz/TLC101",
		"Ann Lee/CE200",
		"Fay /CE200",
	}, names(got))
}

func TestFilterOpenEndedRange(t *testing.T) {
	got := report.Filter(testutil.SampleRecords(), mustCriteria(t, "2025-04-25", "", "", ""))
	assert.Equal(t, []string{"Carl Hann/CE200", "Dee Moss/TLC300"}, names(got))

	got = report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "2025-04-01", "", ""))
	assert.Equal(t, []string{"Ann Lee/TLC101"}, names(got))
}

func TestFilterDepartmentAndName(t *testing.T) {
	got := report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "", "Legal", "ann"))
	assert.Equal(t, []string{
		"Ann Lee/TLC101",
		"Joanna Diaz/TLC101",
		"Ann Lee/CE200",
	}, names(got))
}

func TestFilterNameIsCaseInsensitive(t *testing.T) {
	got := report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "", "", "ANN"))
	assert.Len(t, got, 4, "Ann twice, Joanna and Carl Hann")

	got = report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "", "", "lee ann"))
	assert.Empty(t, got, "needle is matched against first then last name")

	got = report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "", "", "n l"))
	assert.Len(t, got, 2, "the space between first and last name is searchable")
}

func TestFilterDepartmentIsExact(t *testing.T) {
	got := report.Filter(testutil.SampleRecords(), mustCriteria(t, "", "", "legal", ""))
	assert.Empty(t, got)
}

func TestFilterZeroCriteriaKeepsEverything(t *testing.T) {
	rows := testutil.SampleRecords()
	assert.Equal(t, rows, report.Filter(rows, report.Criteria{}))
}

func TestFilterIdempotentAndOrderPreserving(t *testing.T) {
	rows := testutil.SampleRecords()
	criteria := []report.Criteria{
		mustCriteria(t, "2025-04-10", "2025-04-20", "", ""),
		mustCriteria(t, "", "", "Intake", ""),
		mustCriteria(t, "2025-04-01", "2025-04-30", "Legal", "a"),
		{},
	}

	for _, c := range criteria {
		t.Run(c.String(), func(t *testing.T) {
			once := report.Filter(rows, c)
			twice := report.Filter(once, c)
			assert.Equal(t, once, twice)

			// Output is a subsequence of the input.
			i := 0
			for _, r := range once {
				for i < len(rows) && rows[i].FullName()+rows[i].Course != r.FullName()+r.Course {
					i++
				}
				require.Less(t, i, len(rows), "row %s out of order", r.FullName())
				i++
			}
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	rows := testutil.SampleRecords()
	before := names(rows)

	got := report.Filter(rows, mustCriteria(t, "", "", "Intake", ""))
	require.NotEmpty(t, got)
	got[0].FirstName = "Changed"

	assert.Equal(t, before, names(rows))
}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
		wantString string
	}{
		{"empty", "", "", false, "all rows"},
		{"start only", "2025-04-01", "", false, "2025-04-01.."},
		{"end only", "", "2025-04-30", false, "..2025-04-30"},
		{"same day", "2025-04-15", "2025-04-15", false, "2025-04-15..2025-04-15"},
		{"bad start", "April 1", "", true, ""},
		{"bad end", "", "2025-13-01", true, ""},
		{"reversed", "2025-04-30", "2025-04-01", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := report.ParseCriteria(tt.start, tt.end, "", "")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, report.ErrInvalidCriteria))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantString, c.String())
		})
	}
}

func TestCriteriaString(t *testing.T) {
	c := mustCriteria(t, "2025-04-01", "2025-04-30", " Legal ", "ann")
	assert.Equal(t, "2025-04-01..2025-04-30 department=Legal name~ann", c.String())
	assert.False(t, c.IsZero())
	assert.True(t, c.HasDateRange())
}

func TestCriteriaMatch(t *testing.T) {
	c := mustCriteria(t, "", "", "Intake", "bob")
	rows := testutil.SampleRecords()

	assert.True(t, c.Match(rows[1]))
	assert.False(t, c.Match(rows[0]))
}

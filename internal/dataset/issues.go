package dataset

import "fmt"

// IssueKind classifies a data quality problem found on a raw row.
type IssueKind string

const (
	// IssueMissingField: a field is absent. The row is left out of the
	// views keyed on that field and still counted elsewhere.
	IssueMissingField IssueKind = "missing_field"
	// IssueUnparseableNumber: the score is not a number and is treated as absent.
	IssueUnparseableNumber IssueKind = "unparseable_number"
	// IssueUnparseableDate: the enrollment date cannot be read; date filters
	// exclude the row.
	IssueUnparseableDate IssueKind = "unparseable_date"
)

// Issue is a single data quality finding for one field of a row.
type Issue struct {
	Kind  IssueKind `json:"kind"`
	Field string    `json:"field"`
	Value string    `json:"value,omitempty"`
}

// String returns a human readable description.
func (i Issue) String() string {
	if i.Value == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Field)
	}
	return fmt.Sprintf("%s: %s=%q", i.Kind, i.Field, i.Value)
}

// RowIssue is an Issue located at a line of the export. The header is
// line 1; for workbooks the line is the sheet row number.
type RowIssue struct {
	Row int `json:"row"`
	Issue
}

// requiredFields must be present for a row to appear in every view.
var requiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldDepartment,
	FieldCourse,
	FieldStatus,
}

// Diagnose lists the data quality issues of a raw row. It reports what
// Normalize silently turns into absent values.
func Diagnose(raw map[string]string) []Issue {
	var issues []Issue

	for _, field := range requiredFields {
		if lookup(raw, field) == "" {
			issues = append(issues, Issue{Kind: IssueMissingField, Field: field})
		}
	}

	if v := lookup(raw, FieldAverageScore); v != "" {
		if _, ok := ParseScore(v); !ok {
			issues = append(issues, Issue{Kind: IssueUnparseableNumber, Field: FieldAverageScore, Value: v})
		}
	}

	switch v := lookup(raw, FieldEnrolledOn); {
	case v == "":
		issues = append(issues, Issue{Kind: IssueMissingField, Field: FieldEnrolledOn})
	default:
		if _, ok := ParseDay(v); !ok {
			issues = append(issues, Issue{Kind: IssueUnparseableDate, Field: FieldEnrolledOn, Value: v})
		}
	}

	return issues
}

// CountByKind tallies issues per kind.
func CountByKind(issues []RowIssue) map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	return counts
}

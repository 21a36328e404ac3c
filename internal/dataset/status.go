// Package dataset provides the assignment record model and the ingestion of
// training exports (CSV and XLSX) for the compliance dashboard.
package dataset

import "strings"

// Status is the training status of an assignment as exported by the LMS.
type Status string

// Status values seen in LMS exports. Only StatusCompleted counts as completion.
const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
	StatusNotStarted Status = "Not Started"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsCompleted reports whether the status is exactly "Completed".
// Values such as "Not Completed" or "completed" do not count.
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// IsEmpty returns true if the export carried no status for the row.
func (s Status) IsEmpty() bool {
	return strings.TrimSpace(string(s)) == ""
}

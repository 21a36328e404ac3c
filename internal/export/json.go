package export

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// Document is the JSON export layout. Undefined metrics are null.
type Document struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Generation  int                     `json:"generation"`
	Criteria    CriteriaDoc             `json:"criteria"`
	KPI         report.KPI              `json:"kpi"`
	Courses     []report.CourseStat     `json:"courses"`
	Departments []report.DepartmentStat `json:"departments"`
	Individuals []report.IndividualRow  `json:"individuals"`
}

// CriteriaDoc is the active filter with day-precision dates.
type CriteriaDoc struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Department  string `json:"department,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
}

// NewDocument builds the JSON document of a snapshot.
func NewDocument(snap *report.Snapshot, opts Options) Document {
	c := snap.Criteria
	doc := Document{
		GeneratedAt: opts.generatedAt(snap),
		Generation:  snap.Generation,
		Criteria: CriteriaDoc{
			Department:  c.Department,
			Name:        c.Name,
			Description: c.String(),
		},
		KPI:         snap.Views.KPI,
		Courses:     nonNil(snap.Views.Courses),
		Departments: nonNil(snap.Views.Departments),
		Individuals: nonNil(snap.Views.Individuals),
	}
	if !c.Start.IsZero() {
		doc.Criteria.Start = c.Start.Format("2006-01-02")
	}
	if !c.End.IsZero() {
		doc.Criteria.End = c.End.Format("2006-01-02")
	}
	return doc
}

// WriteJSON writes the indented JSON document of snap.
func WriteJSON(w io.Writer, snap *report.Snapshot, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(snap, opts)); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}

// nonNil keeps empty views as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

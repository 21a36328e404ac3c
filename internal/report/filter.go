package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
)

// ErrInvalidCriteria is returned when filter input cannot be parsed.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Criteria narrows the row set. Zero fields pass every row.
type Criteria struct {
	// Start and End are inclusive calendar-day bounds.
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	// Department must equal the row's department exactly.
	Department string `json:"department,omitempty"`

	// Name is a case-insensitive substring of "first last".
	Name string `json:"name,omitempty"`
}

// ParseCriteria builds criteria from day-precision strings such as
// "2025-04-01". Empty strings leave the corresponding bound unset.
func ParseCriteria(start, end, department, name string) (Criteria, error) {
	c := Criteria{
		Department: strings.TrimSpace(department),
		Name:       strings.TrimSpace(name),
	}

	if start = strings.TrimSpace(start); start != "" {
		day, ok := dataset.ParseDay(start)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: start date %q", ErrInvalidCriteria, start)
		}
		c.Start = day
	}
	if end = strings.TrimSpace(end); end != "" {
		day, ok := dataset.ParseDay(end)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: end date %q", ErrInvalidCriteria, end)
		}
		c.End = day
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.Start.After(c.End) {
		return Criteria{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidCriteria, c.Start.Format(dayLayout), c.End.Format(dayLayout))
	}

	return c, nil
}

const dayLayout = "2006-01-02"

// IsZero returns true if the criteria pass every row.
func (c Criteria) IsZero() bool {
	return c.Start.IsZero() && c.End.IsZero() && c.Department == "" && c.Name == ""
}

// HasDateRange returns true if either date bound is set.
func (c Criteria) HasDateRange() bool {
	return !c.Start.IsZero() || !c.End.IsZero()
}

// String describes the active predicates, e.g.
// "2025-04-01..2025-04-30 department=Legal name~ann".
func (c Criteria) String() string {
	if c.IsZero() {
		return "all rows"
	}

	var parts []string
	if c.HasDateRange() {
		from, to := "", ""
		if !c.Start.IsZero() {
			from = c.Start.Format(dayLayout)
		}
		if !c.End.IsZero() {
			to = c.End.Format(dayLayout)
		}
		parts = append(parts, from+".."+to)
	}
	if c.Department != "" {
		parts = append(parts, "department="+c.Department)
	}
	if c.Name != "" {
		parts = append(parts, "name~"+c.Name)
	}
	return strings.Join(parts, " ")
}

// matcher evaluates criteria against rows. It owns a case folder, which
// must not be shared between goroutines.
type matcher struct {
	criteria Criteria
	start    time.Time
	end      time.Time
	folder   cases.Caser
	needle   string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{
		criteria: c,
		start:    truncateDay(c.Start),
		end:      truncateDay(c.End),
		folder:   cases.Fold(),
	}
	if c.Name != "" {
		m.needle = m.folder.String(c.Name)
	}
	return m
}

func (m *matcher) match(r dataset.Record) bool {
	if m.criteria.HasDateRange() {
		if !r.HasEnrollment() {
			return false
		}
		day := truncateDay(r.EnrolledOn)
		if !m.start.IsZero() && day.Before(m.start) {
			return false
		}
		if !m.end.IsZero() && day.After(m.end) {
			return false
		}
	}

	if m.criteria.Department != "" && r.Department != m.criteria.Department {
		return false
	}

	if m.needle != "" && !strings.Contains(m.folder.String(r.FullName()), m.needle) {
		return false
	}

	return true
}

// Match reports whether a single row passes the criteria.
func (c Criteria) Match(r dataset.Record) bool {
	return newMatcher(c).match(r)
}

// Filter returns the rows passing every predicate, in input order. The
// input slice is not modified.
func Filter(rows []dataset.Record, c Criteria) []dataset.Record {
	m := newMatcher(c)
	out := make([]dataset.Record, 0, len(rows))
	for _, r := range rows {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// truncateDay drops the time of day, keeping the calendar date.
func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

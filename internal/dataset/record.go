package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Canonical field names of a training export row.
const (
	FieldCourse       = "Course"
	FieldStatus       = "Status"
	FieldDepartment   = "Department"
	FieldFirstName    = "First name"
	FieldLastName     = "Last name"
	FieldAverageScore = "Average score"
	FieldEnrolledOn   = "Enrolled on"
)

// CanonicalFields lists the recognised fields in export column order.
var CanonicalFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldDepartment,
	FieldCourse,
	FieldStatus,
	FieldAverageScore,
	FieldEnrolledOn,
}

// dayLayouts are the accepted day-precision layouts, tried in order.
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// Record is one training-course assignment.
type Record struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Course     string `json:"course"`
	Status     Status `json:"status"`

	// AverageScore is nil when the export had no parseable score.
	AverageScore *float64 `json:"average_score"`

	// EnrolledOn is midnight UTC of the enrollment day, zero when absent.
	EnrolledOn time.Time `json:"enrolled_on"`
}

// Normalize converts one raw export row into a Record. It never fails:
// missing or malformed values become absent fields.
func Normalize(raw map[string]string) Record {
	get := func(field string) string {
		return lookup(raw, field)
	}

	rec := Record{
		FirstName:  get(FieldFirstName),
		LastName:   get(FieldLastName),
		Department: get(FieldDepartment),
		Course:     get(FieldCourse),
		Status:     Status(get(FieldStatus)),
	}

	if score, ok := ParseScore(get(FieldAverageScore)); ok {
		rec.AverageScore = &score
	}
	if day, ok := ParseDay(get(FieldEnrolledOn)); ok {
		rec.EnrolledOn = day
	}

	return rec
}

// lookup returns the trimmed value of a field, accepting non-canonical
// spellings of the key ("first_name", "FIRST NAME").
func lookup(raw map[string]string, field string) string {
	if v, ok := raw[field]; ok {
		return strings.TrimSpace(v)
	}
	for key, v := range raw {
		if CanonicalColumn(key) == field {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ParseScore parses a score cell. A trailing percent sign is allowed.
// NaN and infinities are rejected.
func ParseScore(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseDay parses the date part of a timestamp cell such as
// "2025-04-15 10:00:00" and returns midnight UTC of that day.
func ParseDay(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	token := fields[0]
	if i := strings.IndexByte(token, 'T'); i == len("2006-01-02") {
		token = token[:i]
	}

	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FullName returns "first last" as used by the name search.
func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// HasName returns true if both name fields are present.
func (r Record) HasName() bool {
	return r.FirstName != "" && r.LastName != ""
}

// HasCourse returns true if the record is keyed to a course.
func (r Record) HasCourse() bool {
	return r.Course != ""
}

// HasEnrollment returns true if the enrollment day is known.
func (r Record) HasEnrollment() bool {
	return !r.EnrolledOn.IsZero()
}

// IsCompleted returns true if the assignment is completed.
func (r Record) IsCompleted() bool {
	return r.Status.IsCompleted()
}

// Score returns the average score and whether it is present.
func (r Record) Score() (float64, bool) {
	if r.AverageScore == nil {
		return 0, false
	}
	return *r.AverageScore, true
}

// Clone returns a copy of the record that shares no storage with r.
func (r Record) Clone() Record {
	if r.AverageScore != nil {
		score := *r.AverageScore
		r.AverageScore = &score
	}
	return r
}

// Raw converts the record back to an export row keyed by canonical field.
func (r Record) Raw() map[string]string {
	raw := map[string]string{
		FieldFirstName:  r.FirstName,
		FieldLastName:   r.LastName,
		FieldDepartment: r.Department,
		FieldCourse:     r.Course,
		FieldStatus:     r.Status.String(),
	}
	if score, ok := r.Score(); ok {
		raw[FieldAverageScore] = strconv.FormatFloat(score, 'f', -1, 64)
	} else {
		raw[FieldAverageScore] = ""
	}
	if r.HasEnrollment() {
		raw[FieldEnrolledOn] = r.EnrolledOn.Format("2006-01-02")
	} else {
		raw[FieldEnrolledOn] = ""
	}
	return raw
}

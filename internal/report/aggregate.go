package report

import (
	"sort"
	"strings"

	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
)

// CourseTypes splits courses into two types by name prefix.
type CourseTypes struct {
	Prefix string
	Match  string
	Other  string
}

// DefaultCourseTypes labels "TLC..." courses TLC and every other course CE.
func DefaultCourseTypes() CourseTypes {
	return CourseTypes{Prefix: "TLC", Match: "TLC", Other: "CE"}
}

// Of returns the type label of a course.
func (ct CourseTypes) Of(course string) string {
	if ct.Prefix != "" && strings.HasPrefix(course, ct.Prefix) {
		return ct.Match
	}
	return ct.Other
}

// KPI holds the headline counters.
type KPI struct {
	DistinctCourses  int    `json:"distinct_courses"`
	TotalAssignments int    `json:"total_assignments"`
	TotalCompleted   int    `json:"total_completed"`
	ComplianceRate   Metric `json:"compliance_rate"`
	AverageScore     Metric `json:"average_score"`
}

// CourseStat is one row of the per-course view.
type CourseStat struct {
	Course         string         `json:"course"`
	Type           string         `json:"type"`
	Assigned       int            `json:"assigned"`
	Completed      int            `json:"completed"`
	ComplianceRate Metric         `json:"compliance_rate"`
	AverageScore   Metric         `json:"average_score"`
	Status         Classification `json:"status"`
}

// DepartmentStat is one row of the per-department view.
type DepartmentStat struct {
	Department     string         `json:"department"`
	Assigned       int            `json:"assigned"`
	Completed      int            `json:"completed"`
	ComplianceRate Metric         `json:"compliance_rate"`
	Status         Classification `json:"status"`
}

// IndividualRow is one assignment of the per-individual view.
type IndividualRow struct {
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Department   string         `json:"department"`
	Course       string         `json:"course"`
	Status       dataset.Status `json:"status"`
	Completed    bool           `json:"completed"`
	AverageScore Metric         `json:"average_score"`
}

// Name returns "first last".
func (r IndividualRow) Name() string {
	return r.FirstName + " " + r.LastName
}

// Views are the four aggregate views computed from one row set.
type Views struct {
	KPI         KPI              `json:"kpi"`
	Courses     []CourseStat     `json:"courses"`
	Departments []DepartmentStat `json:"departments"`
	Individuals []IndividualRow  `json:"individuals"`
}

// Aggregator computes the views. The zero value is not useful; use
// NewAggregator for the dashboard defaults.
type Aggregator struct {
	Thresholds       Thresholds
	CourseLabels     Labels
	DepartmentLabels Labels
	CourseTypes      CourseTypes
}

// NewAggregator returns an aggregator with the dashboard defaults.
func NewAggregator() Aggregator {
	return Aggregator{
		Thresholds:       DefaultThresholds(),
		CourseLabels:     CourseLabels,
		DepartmentLabels: DepartmentLabels,
		CourseTypes:      DefaultCourseTypes(),
	}
}

// Aggregate computes all four views from the same rows.
func (a Aggregator) Aggregate(rows []dataset.Record) Views {
	return Views{
		KPI:         a.KPI(rows),
		Courses:     a.Courses(rows),
		Departments: a.Departments(rows),
		Individuals: Individuals(rows),
	}
}

// KPI computes the headline counters. Rows without a course count toward
// assignments and completions but not toward the distinct course count.
func (a Aggregator) KPI(rows []dataset.Record) KPI {
	var (
		all     tally
		courses = make(map[string]struct{})
	)
	for _, r := range rows {
		all.add(r)
		if r.HasCourse() {
			courses[r.Course] = struct{}{}
		}
	}

	return KPI{
		DistinctCourses:  len(courses),
		TotalAssignments: all.assigned,
		TotalCompleted:   all.completed,
		ComplianceRate:   all.rate(),
		AverageScore:     all.average(),
	}
}

// Courses computes the per-course view in first-seen course order.
func (a Aggregator) Courses(rows []dataset.Record) []CourseStat {
	g := groupBy(rows, func(r dataset.Record) string { return r.Course })

	stats := make([]CourseStat, 0, len(g.order))
	for _, course := range g.order {
		t := g.byKey[course]
		rate := t.rate()
		stats = append(stats, CourseStat{
			Course:         course,
			Type:           a.CourseTypes.Of(course),
			Assigned:       t.assigned,
			Completed:      t.completed,
			ComplianceRate: rate,
			AverageScore:   t.average(),
			Status:         ClassifyMetric(rate, a.Thresholds, a.CourseLabels),
		})
	}
	return stats
}

// Departments computes the per-department view in first-seen order. Rows
// without a department are left out.
func (a Aggregator) Departments(rows []dataset.Record) []DepartmentStat {
	g := groupBy(rows, func(r dataset.Record) string { return r.Department })

	stats := make([]DepartmentStat, 0, len(g.order))
	for _, dept := range g.order {
		t := g.byKey[dept]
		rate := t.rate()
		stats = append(stats, DepartmentStat{
			Department:     dept,
			Assigned:       t.assigned,
			Completed:      t.completed,
			ComplianceRate: rate,
			Status:         ClassifyMetric(rate, a.Thresholds, a.DepartmentLabels),
		})
	}
	return stats
}

// Individuals lists one row per assignment that has both names and a
// course. Other rows are dropped.
func Individuals(rows []dataset.Record) []IndividualRow {
	out := make([]IndividualRow, 0, len(rows))
	for _, r := range rows {
		if !r.HasName() || !r.HasCourse() {
			continue
		}
		score := Undefined()
		if v, ok := r.Score(); ok {
			score = Defined(v)
		}
		out = append(out, IndividualRow{
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Department:   r.Department,
			Course:       r.Course,
			Status:       r.Status,
			Completed:    r.IsCompleted(),
			AverageScore: score,
		})
	}
	return out
}

// DepartmentNames returns the distinct non-empty departments, sorted.
func DepartmentNames(rows []dataset.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		if r.Department != "" && !seen[r.Department] {
			seen[r.Department] = true
			names = append(names, r.Department)
		}
	}
	sort.Strings(names)
	return names
}

// tally folds the counters of one group.
type tally struct {
	assigned  int
	completed int
	// scores holds parseable scores of completed rows only.
	scores []float64
}

func (t *tally) add(r dataset.Record) {
	t.assigned++
	if !r.IsCompleted() {
		return
	}
	t.completed++
	if score, ok := r.Score(); ok {
		t.scores = append(t.scores, score)
	}
}

func (t *tally) rate() Metric {
	return Percent(t.completed, t.assigned)
}

func (t *tally) average() Metric {
	return Mean(t.scores)
}

// groups keeps tallies by key in first-seen order.
type groups struct {
	order []string
	byKey map[string]*tally
}

// groupBy tallies rows by key, skipping rows whose key is empty.
func groupBy(rows []dataset.Record, key func(dataset.Record) string) groups {
	g := groups{byKey: make(map[string]*tally)}
	for _, r := range rows {
		k := key(r)
		if k == "" {
			continue
		}
		t, ok := g.byKey[k]
		if !ok {
			t = &tally{}
			g.byKey[k] = t
			g.order = append(g.order, k)
		}
		t.add(r)
	}
	return g
}

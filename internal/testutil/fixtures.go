// Package testutil provides test utilities and fixtures for tlcdash testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FLFTraining/TLC-Dashboard/internal/config"
	"github.com/FLFTraining/TLC-Dashboard/internal/dataset"
)

// RecordOption configures a test record.
type RecordOption func(*dataset.Record)

// NewTestRecord creates a completed TLC101 assignment for Test User in
// Legal, enrolled 2025-04-15, with optional configuration.
func NewTestRecord(opts ...RecordOption) dataset.Record {
	rec := dataset.Record{
		FirstName:  "Test",
		LastName:   "User",
		Department: "Legal",
		Course:     "TLC101",
		Status:     dataset.StatusCompleted,
	}
	rec.EnrolledOn, _ = dataset.ParseDay("2025-04-15")

	for _, opt := range opts {
		opt(&rec)
	}

	return rec
}

// WithName sets the first and last name.
func WithName(first, last string) RecordOption {
	return func(r *dataset.Record) {
		r.FirstName = first
		r.LastName = last
	}
}

// WithDepartment sets the department.
func WithDepartment(dept string) RecordOption {
	return func(r *dataset.Record) {
		r.Department = dept
	}
}

// WithCourse sets the course.
func WithCourse(course string) RecordOption {
	return func(r *dataset.Record) {
		r.Course = course
	}
}

// WithStatus sets the status.
func WithStatus(status dataset.Status) RecordOption {
	return func(r *dataset.Record) {
		r.Status = status
	}
}

// WithScore sets the average score.
func WithScore(score float64) RecordOption {
	return func(r *dataset.Record) {
		r.AverageScore = &score
	}
}

// WithoutScore clears the average score.
func WithoutScore() RecordOption {
	return func(r *dataset.Record) {
		r.AverageScore = nil
	}
}

// WithEnrolled sets the enrollment day from a string such as
// "2025-04-15 10:00:00"; an unparseable value clears it.
func WithEnrolled(value string) RecordOption {
	return func(r *dataset.Record) {
		r.EnrolledOn, _ = dataset.ParseDay(value)
	}
}

// SampleRecords returns a small export covering every view:
//
//	TLC101: 3 assigned, 2 completed (66.7%, Adequate), scores 90 and 80
//	CE200:  3 assigned, 0 completed (0.0%, Needs Attention)
//	TLC300: 1 assigned, 1 completed (100.0%, Good), no score
//	Legal:  4 assigned, 2 completed (50.0%, Good)
//	Intake: 3 assigned, 1 completed (33.3%, Needs Attention)
//
// One completed row has no course or enrollment date, one has no
// department and one has no last name.
func SampleRecords() []dataset.Record {
	return []dataset.Record{
		NewTestRecord(WithName("Ann", "Lee"), WithScore(90), WithEnrolled("2025-04-01")),
		NewTestRecord(WithName("Bob", "Ray"), WithDepartment("Intake"), WithScore(80), WithEnrolled("2025-04-10 09:00:00")),
		NewTestRecord(WithName("Joanna", "Diaz"), WithStatus(dataset.StatusInProgress), WithEnrolled("2025-04-15")),
		NewTestRecord(WithName("Ann", "Lee"), WithCourse("CE200"), WithStatus(dataset.StatusNotStarted), WithEnrolled("2025-04-20")),
		NewTestRecord(WithName("Carl", "Hann"), WithDepartment("Intake"), WithCourse("CE200"), WithStatus(dataset.StatusNotStarted), WithEnrolled("2025-04-25 10:00:00")),
		NewTestRecord(WithName("Dee", "Moss"), WithDepartment(""), WithCourse("TLC300"), WithoutScore(), WithEnrolled("2025-04-30")),
		NewTestRecord(WithName("Eve", "Stone"), WithCourse(""), WithEnrolled("")),
		NewTestRecord(WithName("Fay", ""), WithDepartment("Intake"), WithCourse("CE200"), WithStatus(dataset.StatusInProgress), WithEnrolled("2025-04-12")),
	}
}

// ConfigOption configures a test config.
type ConfigOption func(*config.Config)

// NewTestConfig creates a config for testing with optional configuration.
func NewTestConfig(t *testing.T, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithDatasetPath sets the dataset path in the config.
func WithDatasetPath(path string) ConfigOption {
	return func(c *config.Config) {
		c.Dashboard.Dataset = path
	}
}

// WithThresholds sets the tier thresholds.
func WithThresholds(top, mid float64) ConfigOption {
	return func(c *config.Config) {
		c.Dashboard.Thresholds.Top = top
		c.Dashboard.Thresholds.Mid = mid
	}
}

// TempProject creates a temporary directory with a .tlcdash folder.
func TempProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".tlcdash"), 0755); err != nil {
		t.Fatalf("Failed to create .tlcdash directory: %v", err)
	}
	return dir
}

// TempProjectFull creates a temp project with a config file and a CSV
// export of records at the config's dataset path.
func TempProjectFull(t *testing.T, cfg *config.Config, records []dataset.Record) string {
	t.Helper()

	dir := TempProject(t)

	configPath := filepath.Join(dir, ".tlcdash", "config.yaml")
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	dataPath := cfg.DatasetPath(dir)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		t.Fatalf("Failed to create dataset directory: %v", err)
	}
	ds := &dataset.Dataset{Records: records}
	if err := ds.Save(dataPath); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	return dir
}

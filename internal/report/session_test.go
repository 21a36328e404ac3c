package report_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
	"github.com/FLFTraining/TLC-Dashboard/internal/testutil"
)

func loadedSession(t *testing.T, opts ...report.Option) *report.Session {
	t.Helper()
	s := report.NewSession(opts...)
	_, err := s.Load(testutil.SampleRecords())
	require.NoError(t, err)
	return s
}

func TestSessionNotReadyBeforeLoad(t *testing.T) {
	s := report.NewSession()
	assert.Equal(t, report.StateLoading, s.State())
	assert.Equal(t, "loading", s.State().String())

	_, err := s.Snapshot()
	assert.ErrorIs(t, err, report.ErrNotReady)

	_, err = s.ApplyFilter(report.Criteria{Department: "Legal"})
	assert.ErrorIs(t, err, report.ErrNotReady)

	_, err = s.Reset()
	assert.ErrorIs(t, err, report.ErrNotReady)
}

func TestSessionLoad(t *testing.T) {
	s := report.NewSession()
	snap, err := s.Load(testutil.SampleRecords())
	require.NoError(t, err)

	assert.Equal(t, report.StateReady, s.State())
	assert.Equal(t, 1, snap.Generation)
	assert.True(t, snap.Criteria.IsZero())
	assert.Len(t, snap.Rows, 8)
	assert.Equal(t, 8, snap.Views.KPI.TotalAssignments)
	assert.NotEmpty(t, s.ID())

	_, err = s.Load(testutil.SampleRecords())
	assert.ErrorIs(t, err, report.ErrAlreadyLoaded)
}

func TestSessionLoadEmpty(t *testing.T) {
	s := report.NewSession()
	snap, err := s.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, report.StateReady, s.State())
	assert.Equal(t, 0, snap.Views.KPI.TotalAssignments)
	assert.False(t, snap.Views.KPI.ComplianceRate.Valid)
	assert.Empty(t, snap.Views.Courses)
}

func TestSessionApplyFilterReplacesPrevious(t *testing.T) {
	s := loadedSession(t)

	snap, err := s.ApplyFilter(report.Criteria{Department: "Intake"})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Generation)
	assert.Len(t, snap.Rows, 3)
	assert.Equal(t, "33.3", snap.Views.KPI.ComplianceRate.String())

	// Criteria are not combined with the previous filter.
	snap, err = s.ApplyFilter(report.Criteria{Name: "ann"})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Generation)
	assert.Len(t, snap.Rows, 4)

	current, err := s.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, current)
}

func TestSessionResetRestoresUnfilteredViews(t *testing.T) {
	s := loadedSession(t)
	first, err := s.Snapshot()
	require.NoError(t, err)

	_, err = s.ApplyFilter(report.Criteria{Department: "Legal", Name: "zzz"})
	require.NoError(t, err)

	reset, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, 3, reset.Generation)
	assert.Equal(t, first.Views, reset.Views)
	assert.Equal(t, first.Rows, reset.Rows)
}

func TestSessionEmptyFilterResult(t *testing.T) {
	s := loadedSession(t)

	snap, err := s.ApplyFilter(report.Criteria{Department: "Nowhere"})
	require.NoError(t, err)
	assert.Empty(t, snap.Rows)
	assert.Equal(t, report.Placeholder, snap.Views.KPI.ComplianceRate.String())
	assert.Equal(t, report.Placeholder, snap.Views.KPI.AverageScore.String())
	assert.Equal(t, []string{"Intake", "Legal"}, s.Departments(), "choices come from the full dataset")
}

func TestSessionDatasetIsImmutable(t *testing.T) {
	records := testutil.SampleRecords()
	s := report.NewSession()
	_, err := s.Load(records)
	require.NoError(t, err)

	records[0].Course = "Mutated"
	full := s.Full()
	full[1].Course = "Mutated"

	snap, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, "TLC101", snap.Rows[0].Course)
	assert.Equal(t, "TLC101", s.Full()[1].Course)
}

func TestSessionScoresAreNotShared(t *testing.T) {
	records := testutil.SampleRecords()
	s := report.NewSession()
	snap, err := s.Load(records)
	require.NoError(t, err)
	require.Equal(t, "85.0", snap.Views.KPI.AverageScore.String())

	*records[0].AverageScore = 10
	*s.Full()[0].AverageScore = 42
	*snap.Rows[1].AverageScore = 0

	snap, err = s.Reset()
	require.NoError(t, err)
	assert.Equal(t, "85.0", snap.Views.KPI.AverageScore.String())
	score, ok := s.Full()[0].Score()
	require.True(t, ok)
	assert.Equal(t, 90.0, score)
}

func TestSessionWithClockAndLogger(t *testing.T) {
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	s := loadedSession(t, report.WithClock(func() time.Time { return at }), report.WithLogger(log))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, at, snap.ComputedAt)

	out := buf.String()
	assert.Contains(t, out, "dataset loaded")
	assert.Contains(t, out, "views recomputed")
	assert.Contains(t, out, s.ID())
}

func TestSessionWithAggregator(t *testing.T) {
	agg := report.NewAggregator()
	agg.Thresholds = report.Thresholds{Top: 60, Mid: 20}

	s := loadedSession(t, report.WithAggregator(agg))
	snap, err := s.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, "Good", snap.Views.Courses[0].Status.Label, "66.7 is top with a 60 threshold")
	assert.Equal(t, "Good", snap.Views.Departments[1].Status.Label, "33.3 is mid with a 20 threshold")
}

func TestSessionConcurrentReaders(t *testing.T) {
	s := loadedSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.ApplyFilter(report.Criteria{Department: "Legal"})
				return
			}
			snap, err := s.Snapshot()
			if assert.NoError(t, err) {
				assert.Equal(t, len(snap.Rows), snap.Views.KPI.TotalAssignments)
			}
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Generation)
}

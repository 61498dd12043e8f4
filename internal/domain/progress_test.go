package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyProgress(t *testing.T) {
	cases := []struct {
		completed, target int
		want              Status
	}{
		{0, 5, NotStarted},
		{1, 5, InProgress},
		{4, 5, InProgress},
		{5, 5, TargetReached},
		{0, 0, NotStarted},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyProgress(tc.completed, tc.target), "completed=%d target=%d", tc.completed, tc.target)
	}
}

func TestCompletionRate(t *testing.T) {
	require.Equal(t, 0.0, CompletionRate(3, 0))
	require.Equal(t, 50.0, CompletionRate(2, 4))
	require.Equal(t, 100.0, CompletionRate(4, 4))
}

func TestToggleFlipsSingleIndex(t *testing.T) {
	m := TeamMember{TargetVideos: 3, ProgressChecks: []bool{false, false, false}}

	next, changed := m.ToggleProgress(1)
	require.True(t, changed)
	require.Equal(t, []bool{false, true, false}, next.ProgressChecks)
	require.Equal(t, 1, next.Completed())
	require.Equal(t, InProgress, next.Status())

	// original is untouched
	require.Equal(t, []bool{false, false, false}, m.ProgressChecks)

	back, changed := next.ToggleProgress(1)
	require.True(t, changed)
	require.Equal(t, 0, back.Completed())
}

func TestToggleOutOfRangeIsNoop(t *testing.T) {
	m := TeamMember{TargetVideos: 2, ProgressChecks: []bool{true, false}}

	for _, i := range []int{-1, 2, 10} {
		next, changed := m.ToggleProgress(i)
		require.False(t, changed)
		require.Equal(t, m.ProgressChecks, next.ProgressChecks)
	}
}

func TestResetClearsAllChecks(t *testing.T) {
	m := TeamMember{TargetVideos: 3, ProgressChecks: []bool{true, true, true}}
	require.Equal(t, TargetReached, m.Status())

	reset := m.Reset()
	require.Len(t, reset.ProgressChecks, 3)
	require.Equal(t, 0, reset.Completed())
	require.Equal(t, NotStarted, reset.Status())
}

func TestSetProgressRequiresExactLength(t *testing.T) {
	_, err := SetProgress(3, []bool{true})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "progress_checks")

	checks, err := SetProgress(2, []bool{true, false})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, checks)
}

func TestNormalizeProgress(t *testing.T) {
	require.Equal(t, []bool{true, false, false}, NormalizeProgress([]bool{true}, 3))
	require.Equal(t, []bool{true, true}, NormalizeProgress([]bool{true, true, true}, 2))
}

func TestStatusMarshalText(t *testing.T) {
	b, err := TargetReached.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "Target Reached", string(b))
	require.Equal(t, "Not Started", NotStarted.String())
}

func TestStatusJSONRoundTrip(t *testing.T) {
	for _, status := range []Status{NotStarted, InProgress, TargetReached} {
		b, err := json.Marshal(status)
		require.NoError(t, err)

		var got Status
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, status, got)
	}

	var row struct {
		Status Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"In Progress"}`), &row))
	require.Equal(t, InProgress, row.Status)

	var bad Status
	require.Error(t, json.Unmarshal([]byte(`"Finished"`), &bad))
	require.Error(t, bad.UnmarshalText([]byte("in progress")))
}

func TestProgressWalkthrough(t *testing.T) {
	m := TeamMember{TargetVideos: 4, ProgressChecks: []bool{true, true, false, false}}
	require.Equal(t, 2, m.Completed())
	require.Equal(t, 50.0, m.CompletionRate())
	require.Equal(t, InProgress, m.Status())

	steps := []struct {
		toggle    int
		completed int
		rate      float64
		status    Status
	}{
		{toggle: 2, completed: 3, rate: 75, status: InProgress},
		{toggle: 3, completed: 4, rate: 100, status: TargetReached},
	}
	for _, step := range steps {
		var changed bool
		m, changed = m.ToggleProgress(step.toggle)
		require.True(t, changed)
		require.Equal(t, step.completed, m.Completed(), "after toggling %d", step.toggle)
		require.Equal(t, step.rate, m.CompletionRate(), "after toggling %d", step.toggle)
		require.Equal(t, step.status, m.Status(), "after toggling %d", step.toggle)
	}
	require.Equal(t, []bool{true, true, true, true}, m.ProgressChecks)
}

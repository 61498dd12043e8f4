package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MonthLayout is the bucket key format of trend points
const MonthLayout = "2006-01"

// DefaultTrendMonths is the trend window used when none is requested
const DefaultTrendMonths = 6

// ProgressSnapshot is a point-in-time capture of the aggregate summary
type ProgressSnapshot struct {
	ID             uuid.UUID `json:"id"`
	CapturedAt     time.Time `json:"captured_at"`
	Members        int       `json:"members"`
	TotalCompleted int       `json:"total_completed"`
	TotalTarget    int       `json:"total_target"`
	CompletionRate float64   `json:"completion_rate"`
	TargetReached  int       `json:"target_reached"`
}

// CaptureSnapshot summarizes members at the given instant
func CaptureSnapshot(members []TeamMember, at time.Time) ProgressSnapshot {
	s := Summarize(members)
	return ProgressSnapshot{
		CapturedAt:     at.UTC(),
		Members:        s.TotalMembers,
		TotalCompleted: s.TotalCompleted,
		TotalTarget:    s.TotalTarget,
		CompletionRate: s.CompletionRate,
		TargetReached:  s.TargetReached,
	}
}

// TrendPoint is the latest snapshot within a calendar month
type TrendPoint struct {
	Month          string    `json:"month"`
	CapturedAt     time.Time `json:"captured_at"`
	Members        int       `json:"members"`
	TotalCompleted int       `json:"total_completed"`
	TotalTarget    int       `json:"total_target"`
	CompletionRate float64   `json:"completion_rate"`
	TargetReached  int       `json:"target_reached"`
}

// MonthlyTrends buckets snapshots by UTC month, keeps the latest capture per month
// and returns the last months buckets in ascending order.
func MonthlyTrends(snapshots []ProgressSnapshot, months int) []TrendPoint {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	latest := make(map[string]ProgressSnapshot)
	for _, s := range snapshots {
		key := s.CapturedAt.UTC().Format(MonthLayout)
		if cur, ok := latest[key]; !ok || s.CapturedAt.After(cur.CapturedAt) {
			latest[key] = s
		}
	}

	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	out := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		s := latest[k]
		out = append(out, TrendPoint{
			Month:          k,
			CapturedAt:     s.CapturedAt.UTC(),
			Members:        s.Members,
			TotalCompleted: s.TotalCompleted,
			TotalTarget:    s.TotalTarget,
			CompletionRate: s.CompletionRate,
			TargetReached:  s.TargetReached,
		})
	}
	return out
}

package domain

import "fmt"

// Status classifies a member's progress toward the video target
type Status int

const (
	NotStarted Status = iota
	InProgress
	TargetReached
)

var statusLabels = map[Status]string{
	NotStarted:    "Not Started",
	InProgress:    "In Progress",
	TargetReached: "Target Reached",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText renders the status by its label
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status label
func (s *Status) UnmarshalText(b []byte) error {
	for status, label := range statusLabels {
		if label == string(b) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown progress status %q", string(b))
}

// ClassifyProgress returns the status for a completed count against a target
func ClassifyProgress(completed, target int) Status {
	switch {
	case completed <= 0:
		return NotStarted
	case completed < target:
		return InProgress
	default:
		return TargetReached
	}
}

// CompletionRate returns completed/target as a percentage, or 0 when target is 0
func CompletionRate(completed, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(completed) / float64(target) * 100
}

// CountCompleted returns the number of checked entries
func CountCompleted(checks []bool) int {
	n := 0
	for _, c := range checks {
		if c {
			n++
		}
	}
	return n
}

// ResetProgress returns an all-unchecked array of the given length
func ResetProgress(target int) []bool {
	if target < 0 {
		target = 0
	}
	return make([]bool, target)
}

// Toggle returns a copy of checks with index i flipped. An index outside
// [0, target) leaves the array untouched and reports changed=false.
func Toggle(checks []bool, target, i int) (next []bool, changed bool) {
	next = NormalizeProgress(checks, target)
	if i < 0 || i >= target {
		return next, false
	}
	next[i] = !next[i]
	return next, true
}

// SetProgress validates a full replacement array against the target
func SetProgress(target int, checks []bool) ([]bool, error) {
	if len(checks) != target {
		return nil, NewValidationError("progress_checks", fmt.Sprintf("must contain exactly %d entries", target))
	}
	out := make([]bool, target)
	copy(out, checks)
	return out, nil
}

// NormalizeProgress returns a copy of checks padded or truncated to target
func NormalizeProgress(checks []bool, target int) []bool {
	out := ResetProgress(target)
	copy(out, checks)
	return out
}

// Completed returns the number of checked videos
func (m TeamMember) Completed() int {
	return CountCompleted(m.ProgressChecks)
}

// CompletionRate returns the member's completion percentage
func (m TeamMember) CompletionRate() float64 {
	return CompletionRate(m.Completed(), m.TargetVideos)
}

// Status returns the member's progress classification
func (m TeamMember) Status() Status {
	return ClassifyProgress(m.Completed(), m.TargetVideos)
}

// ToggleProgress returns a copy of m with index i flipped
func (m TeamMember) ToggleProgress(i int) (TeamMember, bool) {
	next, changed := Toggle(m.ProgressChecks, m.TargetVideos, i)
	m.ProgressChecks = next
	return m, changed
}

// Reset returns a copy of m with every video unchecked
func (m TeamMember) Reset() TeamMember {
	m.ProgressChecks = ResetProgress(m.TargetVideos)
	return m
}

package gameweek

import (
	"fmt"
	"time"
)

// ClosedLabel replaces the countdown once the deadline has passed.
const ClosedLabel = "time is up"

type EditWindowInput struct {
	SelectedGameweek  int
	CurrentGameweekID int
	DeadlineTime      *time.Time
	Now               time.Time
	IsManager         bool
}

// EditWindowState is recomputed on every tick and never stored.
type EditWindowState struct {
	IsEditable       bool
	IsDeadlinePassed bool
	HasDeadline      bool
	TimeRemaining    time.Duration
}

// EvaluateEditWindow decides whether lineup edits are permitted for the
// selected gameweek. It does not validate the gameweek range.
func EvaluateEditWindow(in EditWindowInput) EditWindowState {
	if in.DeadlineTime == nil {
		return EditWindowState{
			IsEditable: in.IsManager && in.SelectedGameweek > in.CurrentGameweekID,
		}
	}

	deadline := *in.DeadlineTime
	passed := !in.Now.Before(deadline)

	state := EditWindowState{
		HasDeadline:      true,
		IsDeadlinePassed: passed,
	}
	if !passed {
		state.TimeRemaining = deadline.Sub(in.Now)
	}
	state.IsEditable = in.IsManager &&
		in.SelectedGameweek == in.CurrentGameweekID+1 &&
		!passed

	return state
}

// Countdown renders the remaining time, or ClosedLabel once the deadline passed.
// Without a deadline the window is open-ended and there is nothing to count.
func (s EditWindowState) Countdown() string {
	switch {
	case !s.HasDeadline:
		return ""
	case s.IsDeadlinePassed:
		return ClosedLabel
	default:
		return FormatCountdown(s.TimeRemaining)
	}
}

// FormatCountdown renders d as "Xd Xh Xm Xs" using floor division.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

package gameweek

import "time"

const (
	FirstGameweek = 1
	LastGameweek  = 38
)

// Status is the league API snapshot of the competition calendar.
// DeadlineTime belongs to the next editable gameweek and may be nil while the
// upstream has not generated deadlines yet.
type Status struct {
	CurrentID    int
	DeadlineTime *time.Time
	NextID       int
}

// EditableGameweek returns the only gameweek that can accept lineup changes.
func (s Status) EditableGameweek() int {
	return s.CurrentID + 1
}

func ClampGameweek(gw int) int {
	if gw < FirstGameweek {
		return FirstGameweek
	}
	if gw > LastGameweek {
		return LastGameweek
	}
	return gw
}

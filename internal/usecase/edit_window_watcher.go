package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
)

const editWindowTickInterval = time.Second

type EditWindowTick struct {
	At        time.Time                `json:"at"`
	State     gameweek.EditWindowState `json:"-"`
	Countdown string                   `json:"countdown"`
}

// EditWindowWatcher re-evaluates an edit window once per second from an
// already fetched deadline. It performs no I/O.
type EditWindowWatcher struct {
	clock    clockwork.Clock
	interval time.Duration
}

func NewEditWindowWatcher(clock clockwork.Clock) *EditWindowWatcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &EditWindowWatcher{
		clock:    clock,
		interval: editWindowTickInterval,
	}
}

// Watch emits the current state immediately and then on every tick. Once the
// deadline has passed it emits the closed state a single time and closes the
// channel. Without a deadline there is nothing to count down, so only the
// initial state is sent. The returned stop func and ctx cancellation both end
// the watch; stop is safe to call more than once.
func (w *EditWindowWatcher) Watch(ctx context.Context, input gameweek.EditWindowInput) (<-chan EditWindowTick, func()) {
	out := make(chan EditWindowTick)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() { close(done) })
	}

	go func() {
		defer close(out)

		ticker := w.clock.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			input.Now = w.clock.Now()
			state := gameweek.EvaluateEditWindow(input)
			tick := EditWindowTick{
				At:        input.Now,
				State:     state,
				Countdown: state.Countdown(),
			}

			select {
			case out <- tick:
			case <-ctx.Done():
				return
			case <-done:
				return
			}

			if !state.HasDeadline || state.IsDeadlinePassed {
				return
			}

			select {
			case <-ticker.Chan():
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	return out, stop
}

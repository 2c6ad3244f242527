package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
)

func receiveTick(t *testing.T, ticks <-chan EditWindowTick) (EditWindowTick, bool) {
	t.Helper()
	select {
	case tick, ok := <-ticks:
		return tick, ok
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
		return EditWindowTick{}, false
	}
}

func TestEditWindowWatcher_CountsDownAndClosesOnce(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	deadline := start.Add(3 * time.Second)

	watcher := NewEditWindowWatcher(clock)
	ticks, stop := watcher.Watch(context.Background(), gameweek.EditWindowInput{
		SelectedGameweek:  11,
		CurrentGameweekID: 10,
		DeadlineTime:      &deadline,
		IsManager:         true,
	})
	defer stop()

	want := []string{"0d 0h 0m 3s", "0d 0h 0m 2s", "0d 0h 0m 1s", gameweek.ClosedLabel}
	closedCount := 0
	for i, text := range want {
		if i > 0 {
			clock.BlockUntil(1)
			clock.Advance(time.Second)
		}
		tick, ok := receiveTick(t, ticks)
		if !ok {
			t.Fatalf("channel closed early at step %d", i)
		}
		if tick.Countdown != text {
			t.Fatalf("step %d: got=%q want=%q", i, tick.Countdown, text)
		}
		if tick.State.IsDeadlinePassed {
			closedCount++
			if tick.State.IsEditable {
				t.Fatalf("closed tick must not be editable")
			}
		} else if !tick.State.IsEditable {
			t.Fatalf("step %d: expected editable before deadline", i)
		}
	}

	if _, ok := receiveTick(t, ticks); ok {
		t.Fatalf("expected channel to close after the closed state")
	}
	if closedCount != 1 {
		t.Fatalf("expected exactly one closed tick, got %d", closedCount)
	}
}

func TestEditWindowWatcher_PassedDeadlineOnLoad(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	deadline := start.Add(-time.Hour)

	ticks, stop := NewEditWindowWatcher(clock).Watch(context.Background(), gameweek.EditWindowInput{
		SelectedGameweek:  11,
		CurrentGameweekID: 10,
		DeadlineTime:      &deadline,
		IsManager:         true,
	})
	defer stop()

	tick, ok := receiveTick(t, ticks)
	if !ok || tick.Countdown != gameweek.ClosedLabel {
		t.Fatalf("expected immediate closed tick, got %+v ok=%v", tick, ok)
	}
	if _, ok := receiveTick(t, ticks); ok {
		t.Fatalf("expected channel to close")
	}
}

func TestEditWindowWatcher_StopAndCancel(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	deadline := start.Add(48 * time.Hour)
	input := gameweek.EditWindowInput{
		SelectedGameweek:  11,
		CurrentGameweekID: 10,
		DeadlineTime:      &deadline,
		IsManager:         true,
	}

	ticks, stop := NewEditWindowWatcher(clockwork.NewFakeClockAt(start)).Watch(context.Background(), input)
	if tick, _ := receiveTick(t, ticks); tick.Countdown != "2d 0h 0m 0s" {
		t.Fatalf("unexpected first countdown %q", tick.Countdown)
	}
	stop()
	stop()
	if _, ok := receiveTick(t, ticks); ok {
		t.Fatalf("expected channel to close after stop")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticks, stop = NewEditWindowWatcher(clockwork.NewFakeClockAt(start)).Watch(ctx, input)
	defer stop()
	receiveTick(t, ticks)
	cancel()
	if _, ok := receiveTick(t, ticks); ok {
		t.Fatalf("expected channel to close after cancel")
	}
}

func TestEditWindowWatcher_NoDeadlineEmitsOnce(t *testing.T) {
	t.Parallel()

	ticks, stop := NewEditWindowWatcher(clockwork.NewFakeClock()).Watch(context.Background(), gameweek.EditWindowInput{
		SelectedGameweek:  14,
		CurrentGameweekID: 10,
		IsManager:         true,
	})
	defer stop()

	tick, ok := receiveTick(t, ticks)
	if !ok || !tick.State.IsEditable || tick.Countdown != "" {
		t.Fatalf("unexpected open-ended tick: %+v", tick)
	}
	if _, ok := receiveTick(t, ticks); ok {
		t.Fatalf("expected channel to close")
	}
}

package chip

import (
	"errors"
	"testing"
)

func TestBuildUsageHistory_PartitionsByPhase(t *testing.T) {
	history := BuildUsageHistory([]Record{
		{Gameweek: 5, ActiveChip: KindBenchBoost},
		{Gameweek: 19, ActiveChip: KindFreeHit},
		{Gameweek: 20, ActiveChip: KindTripleCaptain},
		{Gameweek: 30, ActiveChip: KindBenchBoost},
		{Gameweek: 31, ActiveChip: KindNone},
		{Gameweek: 32, ActiveChip: KindHidden},
	})

	if gw, ok := history.UsedIn(KindBenchBoost, PhaseFirstHalf); !ok || gw != 5 {
		t.Fatalf("expected benchBoost in phase1 at gw5, got gw=%d ok=%v", gw, ok)
	}
	if gw, ok := history.UsedIn(KindFreeHit, PhaseFirstHalf); !ok || gw != 19 {
		t.Fatalf("expected freeHit in phase1 at gw19, got gw=%d ok=%v", gw, ok)
	}
	if gw, ok := history.UsedIn(KindTripleCaptain, PhaseSecondHalf); !ok || gw != 20 {
		t.Fatalf("expected tripleCaptain in phase2 at gw20, got gw=%d ok=%v", gw, ok)
	}
	if gw, ok := history.UsedIn(KindBenchBoost, PhaseSecondHalf); !ok || gw != 30 {
		t.Fatalf("expected benchBoost in phase2 at gw30, got gw=%d ok=%v", gw, ok)
	}
	if _, ok := history.Phase2[KindNone]; ok {
		t.Fatalf("none must not count as usage")
	}
	if _, ok := history.Phase2[KindHidden]; ok {
		t.Fatalf("hidden must not count as usage")
	}
	if len(history.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %+v", history.Conflicts)
	}
}

func TestUsageHistory_IsAvailable_Scenario(t *testing.T) {
	history := BuildUsageHistory([]Record{
		{Gameweek: 5, ActiveChip: KindBenchBoost},
		{Gameweek: 30, ActiveChip: KindBenchBoost},
	})

	tests := []struct {
		viewed int
		want   bool
	}{
		{viewed: 16, want: false},
		{viewed: 35, want: false},
		{viewed: 5, want: true},
		{viewed: 30, want: true},
	}

	for _, tc := range tests {
		if got := history.IsAvailable(KindBenchBoost, tc.viewed); got != tc.want {
			t.Fatalf("benchBoost at gw%d: got=%v want=%v", tc.viewed, got, tc.want)
		}
	}
}

func TestUsageHistory_PhasesAreIndependent(t *testing.T) {
	history := BuildUsageHistory([]Record{{Gameweek: 7, ActiveChip: KindTripleCaptain}})

	for gw := 1; gw <= 19; gw++ {
		want := gw == 7
		if got := history.IsAvailable(KindTripleCaptain, gw); got != want {
			t.Fatalf("tripleCaptain at gw%d: got=%v want=%v", gw, got, want)
		}
	}
	for gw := 20; gw <= 38; gw++ {
		if !history.IsAvailable(KindTripleCaptain, gw) {
			t.Fatalf("tripleCaptain must be available in phase2 at gw%d", gw)
		}
	}
}

func TestUsageHistory_EmptyHistoryLeavesEverythingAvailable(t *testing.T) {
	history := BuildUsageHistory(nil)
	for _, option := range history.Options(12) {
		if !option.Available {
			t.Fatalf("expected %s to be available", option.Kind)
		}
		if option.Label != "" {
			t.Fatalf("expected empty label for %s, got %q", option.Kind, option.Label)
		}
	}

	var zero UsageHistory
	if !zero.IsAvailable(KindFreeHit, 3) {
		t.Fatalf("zero history must treat chips as unused")
	}
}

func TestBuildUsageHistory_DuplicateKeepsEarliest(t *testing.T) {
	history := BuildUsageHistory([]Record{
		{Gameweek: 12, ActiveChip: KindFreeHit},
		{Gameweek: 4, ActiveChip: KindFreeHit},
	})

	if gw, _ := history.UsedIn(KindFreeHit, PhaseFirstHalf); gw != 4 {
		t.Fatalf("expected earliest gw4 to win, got gw%d", gw)
	}
	if len(history.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d", len(history.Conflicts))
	}
	conflict := history.Conflicts[0]
	if conflict.KeptGameweek != 4 || conflict.IgnoredGameweek != 12 || conflict.Phase != PhaseFirstHalf {
		t.Fatalf("unexpected conflict: %+v", conflict)
	}
	if history.IsAvailable(KindFreeHit, 12) {
		t.Fatalf("ignored duplicate must not unlock the chip at gw12")
	}
}

func TestUsageHistory_Options(t *testing.T) {
	history := BuildUsageHistory([]Record{
		{Gameweek: 3, ActiveChip: KindTheBest},
		{Gameweek: 8, ActiveChip: KindWildcard},
	})

	options := history.Options(10)
	if len(options) != len(SelectableKinds()) {
		t.Fatalf("unexpected option count: %d", len(options))
	}
	if options[0].Kind != KindNone || !options[0].Available {
		t.Fatalf("none must always be the first available option: %+v", options[0])
	}

	var theBest Availability
	for _, option := range options {
		if option.Kind == KindTheBest {
			theBest = option
		}
		if option.Kind == KindWildcard {
			t.Fatalf("wildcard must not be offered for selection")
		}
	}
	if theBest.Available {
		t.Fatalf("theBest must be locked after use in gw3")
	}
	if theBest.Label != "used in GW3" || theBest.UsedInGameweek != 3 {
		t.Fatalf("unexpected theBest option: %+v", theBest)
	}

	remaining := history.Remaining(10)
	for _, kind := range remaining {
		if kind == KindTheBest || kind == KindNone {
			t.Fatalf("unexpected remaining chip %s", kind)
		}
	}
	if len(remaining) != 3 {
		t.Fatalf("expected 3 remaining chips, got %v", remaining)
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind(""); err != nil || kind != KindNone {
		t.Fatalf("empty chip must parse as none, got %q err=%v", kind, err)
	}
	if kind, err := ParseKind(" benchBoost "); err != nil || kind != KindBenchBoost {
		t.Fatalf("unexpected parse result %q err=%v", kind, err)
	}
	if _, err := ParseKind("doublePoints"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if KindWildcard.Selectable() {
		t.Fatalf("wildcard is history-only")
	}
}

func TestPhaseOf(t *testing.T) {
	if PhaseOf(1) != PhaseFirstHalf || PhaseOf(19) != PhaseFirstHalf {
		t.Fatalf("gameweeks 1..19 belong to the first half")
	}
	if PhaseOf(20) != PhaseSecondHalf || PhaseOf(38) != PhaseSecondHalf {
		t.Fatalf("gameweeks 20..38 belong to the second half")
	}
}

package chip

import (
	"fmt"
	"sort"
)

// UsageHistory maps each used chip to the gameweek it was played in, per phase.
type UsageHistory struct {
	Phase1    map[Kind]int
	Phase2    map[Kind]int
	Conflicts []Conflict
}

// Conflict is a chip recorded more than once in the same phase. The earliest
// gameweek is kept; the later one is reported so callers can flag it upstream.
type Conflict struct {
	Kind            Kind
	Phase           Phase
	KeptGameweek    int
	IgnoredGameweek int
}

// Availability describes one chip option for the viewed gameweek.
type Availability struct {
	Kind           Kind
	Available      bool
	UsedInGameweek int
	Label          string
}

// BuildUsageHistory partitions records into phases. Records are sorted by
// gameweek first so the earliest duplicate wins regardless of input order.
func BuildUsageHistory(records []Record) UsageHistory {
	history := UsageHistory{
		Phase1: make(map[Kind]int),
		Phase2: make(map[Kind]int),
	}

	ordered := append([]Record(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Gameweek < ordered[j].Gameweek
	})

	for _, record := range ordered {
		if record.Gameweek <= 0 || !record.ActiveChip.CountsAsUsage() {
			continue
		}

		phase := PhaseOf(record.Gameweek)
		usage := history.phaseMap(phase)
		if kept, exists := usage[record.ActiveChip]; exists {
			if kept != record.Gameweek {
				history.Conflicts = append(history.Conflicts, Conflict{
					Kind:            record.ActiveChip,
					Phase:           phase,
					KeptGameweek:    kept,
					IgnoredGameweek: record.Gameweek,
				})
			}
			continue
		}
		usage[record.ActiveChip] = record.Gameweek
	}

	return history
}

func (h UsageHistory) phaseMap(phase Phase) map[Kind]int {
	if phase == PhaseFirstHalf {
		return h.Phase1
	}
	return h.Phase2
}

// UsedIn returns the gameweek a chip was played in during the given phase.
func (h UsageHistory) UsedIn(kind Kind, phase Phase) (int, bool) {
	usage := h.phaseMap(phase)
	if usage == nil {
		return 0, false
	}
	gw, ok := usage[kind]
	return gw, ok
}

// IsAvailable reports whether kind can be selected for viewedGameweek.
// A chip already recorded for viewedGameweek itself stays selectable so a
// manager can re-save their own choice.
func (h UsageHistory) IsAvailable(kind Kind, viewedGameweek int) bool {
	if kind == KindNone {
		return true
	}
	usedAt, used := h.UsedIn(kind, PhaseOf(viewedGameweek))
	return !used || usedAt == viewedGameweek
}

// Options lists every selectable chip with its availability for viewedGameweek.
func (h UsageHistory) Options(viewedGameweek int) []Availability {
	out := make([]Availability, 0, len(selectableKinds))
	for _, kind := range selectableKinds {
		item := Availability{
			Kind:      kind,
			Available: h.IsAvailable(kind, viewedGameweek),
		}
		if usedAt, used := h.UsedIn(kind, PhaseOf(viewedGameweek)); used && kind != KindNone {
			item.UsedInGameweek = usedAt
			if !item.Available {
				item.Label = fmt.Sprintf("used in GW%d", usedAt)
			}
		}
		out = append(out, item)
	}
	return out
}

// Remaining lists the chips still unused in the phase of viewedGameweek.
func (h UsageHistory) Remaining(viewedGameweek int) []Kind {
	phase := PhaseOf(viewedGameweek)
	out := make([]Kind, 0, len(selectableKinds))
	for _, kind := range selectableKinds {
		if kind == KindNone {
			continue
		}
		if _, used := h.UsedIn(kind, phase); !used {
			out = append(out, kind)
		}
	}
	return out
}

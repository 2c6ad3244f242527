package chip

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown chip")

// Kind is a one-time bonus a team can activate for a single gameweek.
type Kind string

const (
	KindNone          Kind = "none"
	KindTripleCaptain Kind = "tripleCaptain"
	KindBenchBoost    Kind = "benchBoost"
	KindFreeHit       Kind = "freeHit"
	KindTheBest       Kind = "theBest"

	// KindWildcard only appears in historical records.
	KindWildcard Kind = "wildcard"
	// KindHidden masks activations the league API has not revealed yet.
	KindHidden Kind = "hidden"
)

var selectableKinds = []Kind{
	KindNone,
	KindTripleCaptain,
	KindBenchBoost,
	KindFreeHit,
	KindTheBest,
}

// SelectableKinds lists the values a manager may submit, in display order.
func SelectableKinds() []Kind {
	return append([]Kind(nil), selectableKinds...)
}

func (k Kind) Selectable() bool {
	for _, candidate := range selectableKinds {
		if k == candidate {
			return true
		}
	}
	return false
}

// CountsAsUsage reports whether a history record with this kind consumes the chip.
func (k Kind) CountsAsUsage() bool {
	switch k {
	case "", KindNone, KindHidden:
		return false
	default:
		return true
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts the wire value of a chip. An empty value means no chip.
func ParseKind(raw string) (Kind, error) {
	value := Kind(strings.TrimSpace(raw))
	if value == "" {
		return KindNone, nil
	}
	if value.Selectable() || value == KindWildcard || value == KindHidden {
		return value, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Record is one gameweek entry of a team's chip history.
type Record struct {
	Gameweek   int
	ActiveChip Kind
}

type Phase int

const (
	PhaseFirstHalf  Phase = 1
	PhaseSecondHalf Phase = 2

	// PhaseBoundary is the last gameweek of the first half.
	PhaseBoundary = 19
)

func PhaseOf(gameweek int) Phase {
	if gameweek <= PhaseBoundary {
		return PhaseFirstHalf
	}
	return PhaseSecondHalf
}

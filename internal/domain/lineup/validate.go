package lineup

import (
	"fmt"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
)

// Validate mirrors the league API rules before a lineup is submitted. It is a
// local gate only; the league API validates again on its side.
func Validate(selection Selection, activeChip chip.Kind) error {
	starters := selection.Starters()
	if len(starters) != StarterCount {
		return fmt.Errorf("%w: select exactly %d starters, got %d", ErrStarterCount, StarterCount, len(starters))
	}

	captains := 0
	for _, pick := range selection.picks {
		if !pick.IsCaptain {
			continue
		}
		if !pick.IsStarter {
			return fmt.Errorf("%w: %s is on the bench", ErrCaptainNotStarter, pick.PlayerID)
		}
		captains++
	}
	if captains != 1 {
		return fmt.Errorf("%w: choose one captain among the starters, got %d", ErrCaptainCount, captains)
	}

	if !activeChip.Selectable() {
		return fmt.Errorf("%w: %q", ErrInvalidChip, activeChip)
	}

	return nil
}

// RequiresConfirmation reports whether activating kind needs an explicit
// acknowledgement. theBest hands captaincy to the highest scorer until changed.
func RequiresConfirmation(kind chip.Kind) bool {
	return kind == chip.KindTheBest
}

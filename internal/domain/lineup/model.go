package lineup

import (
	"errors"
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
)

// StarterCount is the number of players that score for a team in a gameweek.
const StarterCount = 3

var (
	ErrStarterCount         = errors.New("wrong number of starters")
	ErrCaptainCount         = errors.New("exactly one captain is required")
	ErrCaptainNotStarter    = errors.New("captain must be a starter")
	ErrInvalidChip          = errors.New("invalid chip")
	ErrChipUnavailable      = errors.New("chip already used in this phase")
	ErrConfirmationRequired = errors.New("chip requires confirmation")
	ErrUnknownPlayer        = errors.New("player is not part of the squad")
)

// Pick is one squad member's role for a gameweek.
type Pick struct {
	PlayerID  string
	IsStarter bool
	IsCaptain bool
}

// Lineup is a team's lineup for one gameweek as reported by the league API.
// IsInherited marks a lineup copied forward from an earlier gameweek.
type Lineup struct {
	TeamID       string
	Gameweek     int
	Picks        []Pick
	ActiveChip   chip.Kind
	DeadlineTime *time.Time
	IsInherited  bool
}

// Submission is the payload persisted on save.
type Submission struct {
	TeamID     string
	Gameweek   int
	Picks      []Pick
	ActiveChip chip.Kind
}

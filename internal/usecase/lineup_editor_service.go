package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// LineupEditorView is everything the lineup editor renders for one gameweek.
type LineupEditorView struct {
	Status     gameweek.Status
	Team       team.Team
	Lineup     lineup.Lineup
	Gameweek   int
	EditWindow gameweek.EditWindowState
	Countdown  string
	Chips      []chip.Availability
	IsManager  bool
	Conflicts  []chip.Conflict
}

type EditAction string

const (
	EditActionToggleStarter EditAction = "toggle_starter"
	EditActionSetCaptain    EditAction = "set_captain"
	EditActionSetChip       EditAction = "set_chip"
)

type ApplyInput struct {
	Picks      []lineup.Pick
	ActiveChip chip.Kind
	Action     EditAction
	PlayerID   string
	Chip       string
}

// ApplyResult carries the edited selection plus the save gate verdict.
// ValidationError is nil when the selection could be saved as is.
type ApplyResult struct {
	Picks           []lineup.Pick
	ActiveChip      chip.Kind
	ValidationError error
}

type SaveInput struct {
	TeamID     string
	Gameweek   int
	Picks      []lineup.Pick
	ActiveChip string
	Confirmed  bool
}

type SaveResult struct {
	Message  string
	Gameweek int
}

type LineupEditorService struct {
	statusRepo gameweek.Repository
	teamRepo   team.Repository
	lineupRepo lineup.Repository
	chipRepo   chip.Repository
	clock      clockwork.Clock
	logger     *logging.Logger
}

func NewLineupEditorService(
	statusRepo gameweek.Repository,
	teamRepo team.Repository,
	lineupRepo lineup.Repository,
	chipRepo chip.Repository,
	logger *logging.Logger,
) *LineupEditorService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupEditorService{
		statusRepo: statusRepo,
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
		chipRepo:   chipRepo,
		clock:      clockwork.NewRealClock(),
		logger:     logger,
	}
}

func (s *LineupEditorService) SetClock(clock clockwork.Clock) {
	if clock != nil {
		s.clock = clock
	}
}

type lineupPageData struct {
	status  gameweek.Status
	team    team.Team
	lineup  lineup.Lineup
	history []chip.Record
}

// fetchPage loads the four upstream facts concurrently. Any failure fails the
// whole page; nothing partial is returned. A non-nil known status is reused
// instead of being fetched again.
func (s *LineupEditorService) fetchPage(ctx context.Context, principal user.Principal, teamID string, gw int, known *gameweek.Status) (lineupPageData, error) {
	var data lineupPageData
	token := principal.UpstreamToken

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	if known != nil {
		data.status = *known
	} else {
		p.Go(func(ctx context.Context) error {
			status, err := s.statusRepo.GetStatus(ctx, token)
			if err != nil {
				return fmt.Errorf("get gameweek status: %w", err)
			}
			data.status = status
			return nil
		})
	}
	p.Go(func(ctx context.Context) error {
		item, err := s.teamRepo.GetByID(ctx, token, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		data.team = item
		return nil
	})
	p.Go(func(ctx context.Context) error {
		item, err := s.lineupRepo.GetByTeamAndGameweek(ctx, token, teamID, gw)
		if err != nil {
			return fmt.Errorf("get lineup: %w", err)
		}
		data.lineup = item
		return nil
	})
	p.Go(func(ctx context.Context) error {
		records, err := s.chipRepo.ListHistory(ctx, token, teamID)
		if err != nil {
			return fmt.Errorf("get chip history: %w", err)
		}
		data.history = records
		return nil
	})

	if err := p.Wait(); err != nil {
		return lineupPageData{}, err
	}
	return data, nil
}

// Load builds the editor view for teamID at gw. gw <= 0 selects the gameweek
// currently open for editing.
func (s *LineupEditorService) Load(ctx context.Context, principal user.Principal, teamID string, gw int) (LineupEditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupEditorService.Load")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return LineupEditorView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	var known *gameweek.Status
	if gw <= 0 {
		status, err := s.statusRepo.GetStatus(ctx, principal.UpstreamToken)
		if err != nil {
			return LineupEditorView{}, fmt.Errorf("get gameweek status: %w", err)
		}
		gw = status.EditableGameweek()
		known = &status
	}
	gw = gameweek.ClampGameweek(gw)

	data, err := s.fetchPage(ctx, principal, teamID, gw, known)
	if err != nil {
		return LineupEditorView{}, err
	}

	history := chip.BuildUsageHistory(data.history)
	s.logConflicts(ctx, teamID, history.Conflicts)

	isManager := data.team.IsManagedBy(principal.UserID)
	window := gameweek.EvaluateEditWindow(gameweek.EditWindowInput{
		SelectedGameweek:  gw,
		CurrentGameweekID: data.status.CurrentID,
		DeadlineTime:      effectiveDeadline(data.lineup, data.status),
		Now:               s.clock.Now(),
		IsManager:         isManager,
	})

	view := LineupEditorView{
		Status:     data.status,
		Team:       data.team,
		Lineup:     data.lineup,
		Gameweek:   gw,
		EditWindow: window,
		Countdown:  window.Countdown(),
		Chips:      history.Options(gw),
		IsManager:  isManager,
		Conflicts:  history.Conflicts,
	}
	if view.Lineup.ActiveChip == "" {
		view.Lineup.ActiveChip = chip.KindNone
	}
	return view, nil
}

// Apply performs one edit on an in-progress selection. It never calls the
// league API.
func (s *LineupEditorService) Apply(ctx context.Context, input ApplyInput) (ApplyResult, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupEditorService.Apply")
	defer span.End()

	selection := lineup.NewSelection(input.Picks)
	activeChip := input.ActiveChip
	if activeChip == "" {
		activeChip = chip.KindNone
	}

	var err error
	switch input.Action {
	case EditActionToggleStarter:
		selection, err = selection.ToggleStarter(strings.TrimSpace(input.PlayerID))
	case EditActionSetCaptain:
		selection, err = selection.SetCaptain(strings.TrimSpace(input.PlayerID))
	case EditActionSetChip:
		var kind chip.Kind
		kind, err = chip.ParseKind(input.Chip)
		if err == nil && !kind.Selectable() {
			err = fmt.Errorf("%w: %q", lineup.ErrInvalidChip, kind)
		}
		if err == nil {
			activeChip = kind
		}
	default:
		err = fmt.Errorf("unknown edit action %q", input.Action)
	}
	if err != nil {
		return ApplyResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return ApplyResult{
		Picks:           selection.Picks(),
		ActiveChip:      activeChip,
		ValidationError: lineup.Validate(selection, activeChip),
	}, nil
}

// Save runs the local gate (selection, chip phase, confirmation, edit window)
// before submitting. Any rejection leaves the stored lineup untouched.
func (s *LineupEditorService) Save(ctx context.Context, principal user.Principal, input SaveInput) (SaveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupEditorService.Save")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return SaveResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Gameweek < gameweek.FirstGameweek || input.Gameweek > gameweek.LastGameweek {
		return SaveResult{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, gameweek.FirstGameweek, gameweek.LastGameweek)
	}

	activeChip, err := chip.ParseKind(input.ActiveChip)
	if err != nil {
		activeChip = chip.Kind(strings.TrimSpace(input.ActiveChip))
	}
	selection := lineup.NewSelection(input.Picks)
	if err := lineup.Validate(selection, activeChip); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	data, err := s.fetchPage(ctx, principal, input.TeamID, input.Gameweek, nil)
	if err != nil {
		return SaveResult{}, err
	}

	if !knownPlayers(data.lineup, selection) {
		return SaveResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, lineup.ErrUnknownPlayer)
	}

	history := chip.BuildUsageHistory(data.history)
	s.logConflicts(ctx, input.TeamID, history.Conflicts)
	if !history.IsAvailable(activeChip, input.Gameweek) {
		usedAt, _ := history.UsedIn(activeChip, chip.PhaseOf(input.Gameweek))
		return SaveResult{}, fmt.Errorf("%w: %w: %s used in GW%d", ErrInvalidInput, lineup.ErrChipUnavailable, activeChip, usedAt)
	}

	if lineup.RequiresConfirmation(activeChip) && !input.Confirmed {
		return SaveResult{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, lineup.ErrConfirmationRequired, activeChip)
	}

	isManager := data.team.IsManagedBy(principal.UserID)
	if !isManager {
		return SaveResult{}, fmt.Errorf("%w: only the team manager can change this lineup", ErrForbidden)
	}
	window := gameweek.EvaluateEditWindow(gameweek.EditWindowInput{
		SelectedGameweek:  input.Gameweek,
		CurrentGameweekID: data.status.CurrentID,
		DeadlineTime:      effectiveDeadline(data.lineup, data.status),
		Now:               s.clock.Now(),
		IsManager:         isManager,
	})
	if !window.IsEditable {
		return SaveResult{}, fmt.Errorf("%w: gameweek %d is not open for edits (current=%d)", ErrEditWindowClosed, input.Gameweek, data.status.CurrentID)
	}

	message, err := s.lineupRepo.Submit(ctx, principal.UpstreamToken, lineup.Submission{
		TeamID:     input.TeamID,
		Gameweek:   input.Gameweek,
		Picks:      selection.Picks(),
		ActiveChip: activeChip,
	})
	if err != nil {
		return SaveResult{}, fmt.Errorf("submit lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup submitted",
		"team_id", input.TeamID,
		"gameweek", input.Gameweek,
		"active_chip", activeChip.String(),
	)
	return SaveResult{Message: message, Gameweek: input.Gameweek}, nil
}

func (s *LineupEditorService) logConflicts(ctx context.Context, teamID string, conflicts []chip.Conflict) {
	for _, conflict := range conflicts {
		s.logger.WarnContext(ctx, "duplicate chip usage in phase",
			"team_id", teamID,
			"chip", conflict.Kind.String(),
			"phase", int(conflict.Phase),
			"kept_gameweek", conflict.KeptGameweek,
			"ignored_gameweek", conflict.IgnoredGameweek,
		)
	}
}

// EditWindowInput rebuilds the evaluator input behind v.EditWindow so the
// window can keep ticking without another round trip. Now is left unset.
func (v LineupEditorView) EditWindowInput() gameweek.EditWindowInput {
	return gameweek.EditWindowInput{
		SelectedGameweek:  v.Gameweek,
		CurrentGameweekID: v.Status.CurrentID,
		DeadlineTime:      effectiveDeadline(v.Lineup, v.Status),
		IsManager:         v.IsManager,
	}
}

// effectiveDeadline prefers the lineup's own deadline over the status one.
func effectiveDeadline(item lineup.Lineup, status gameweek.Status) *time.Time {
	if item.DeadlineTime != nil {
		return item.DeadlineTime
	}
	return status.DeadlineTime
}

// knownPlayers rejects picks for players outside the stored squad. An empty
// stored lineup has nothing to compare against.
func knownPlayers(stored lineup.Lineup, selection lineup.Selection) bool {
	if len(stored.Picks) == 0 {
		return true
	}
	squad := make(map[string]struct{}, len(stored.Picks))
	for _, pick := range stored.Picks {
		squad[pick.PlayerID] = struct{}{}
	}
	for _, pick := range selection.Picks() {
		if _, ok := squad[pick.PlayerID]; !ok {
			return false
		}
	}
	return true
}

// IsLocalValidation reports whether err was raised by the save gate rather
// than by the league API.
func IsLocalValidation(err error) bool {
	for _, target := range []error{
		lineup.ErrStarterCount,
		lineup.ErrCaptainCount,
		lineup.ErrCaptainNotStarter,
		lineup.ErrInvalidChip,
		lineup.ErrChipUnavailable,
		lineup.ErrConfirmationRequired,
		lineup.ErrUnknownPlayer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

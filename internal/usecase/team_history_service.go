package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// TeamHistoryView is the read-only lineup of any team for a past or current
// gameweek.
type TeamHistoryView struct {
	Team      team.Team
	Lineup    lineup.Lineup
	Gameweek  int
	Chips     []chip.Availability
	Remaining []chip.Kind
	Conflicts []chip.Conflict
}

type TeamHistoryService struct {
	teamRepo   team.Repository
	lineupRepo lineup.Repository
	chipRepo   chip.Repository
	logger     *logging.Logger
}

func NewTeamHistoryService(
	teamRepo team.Repository,
	lineupRepo lineup.Repository,
	chipRepo chip.Repository,
	logger *logging.Logger,
) *TeamHistoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamHistoryService{
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
		chipRepo:   chipRepo,
		logger:     logger,
	}
}

func (s *TeamHistoryService) View(ctx context.Context, principal user.Principal, teamID string, gw int) (TeamHistoryView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamHistoryService.View")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamHistoryView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if gw < gameweek.FirstGameweek || gw > gameweek.LastGameweek {
		return TeamHistoryView{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, gameweek.FirstGameweek, gameweek.LastGameweek)
	}

	var (
		item    team.Team
		current lineup.Lineup
		records []chip.Record
	)
	token := principal.UpstreamToken

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		item, err = s.teamRepo.GetByID(ctx, token, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		current, err = s.lineupRepo.GetByTeamAndGameweek(ctx, token, teamID, gw)
		if err != nil {
			return fmt.Errorf("get lineup: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		records, err = s.chipRepo.ListHistory(ctx, token, teamID)
		if err != nil {
			return fmt.Errorf("get chip history: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return TeamHistoryView{}, err
	}

	history := chip.BuildUsageHistory(records)
	if len(history.Conflicts) > 0 {
		s.logger.WarnContext(ctx, "duplicate chip usage in phase", "team_id", teamID, "conflicts", len(history.Conflicts))
	}
	if current.ActiveChip == "" {
		current.ActiveChip = chip.KindNone
	}

	return TeamHistoryView{
		Team:      item,
		Lineup:    current,
		Gameweek:  gw,
		Chips:     history.Options(gw),
		Remaining: history.Remaining(gw),
		Conflicts: history.Conflicts,
	}, nil
}

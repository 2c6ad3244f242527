package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
)

const defaultChipBoardWorkers = 4

type ChipBoard struct {
	LeagueID string          `json:"league_id"`
	Gameweek int             `json:"gameweek"`
	Phase    int             `json:"phase"`
	Teams    []TeamChipState `json:"teams"`
}

type TeamChipState struct {
	TeamID      string         `json:"team_id"`
	TeamName    string         `json:"team_name"`
	ManagerName string         `json:"manager_name"`
	Remaining   []chip.Kind    `json:"remaining"`
	Used        map[string]int `json:"used"`
}

// ChipBoardService shows which chips every team in a league still holds for
// the phase of a gameweek.
type ChipBoardService struct {
	teamRepo team.Repository
	chipRepo chip.Repository
	workers  int
	logger   *logging.Logger
}

func NewChipBoardService(teamRepo team.Repository, chipRepo chip.Repository, workers int, logger *logging.Logger) *ChipBoardService {
	if workers <= 0 {
		workers = defaultChipBoardWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChipBoardService{
		teamRepo: teamRepo,
		chipRepo: chipRepo,
		workers:  workers,
		logger:   logger,
	}
}

func (s *ChipBoardService) Board(ctx context.Context, principal user.Principal, leagueID string, gw int) (ChipBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipBoardService.Board")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return ChipBoard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if gw < gameweek.FirstGameweek || gw > gameweek.LastGameweek {
		return ChipBoard{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, gameweek.FirstGameweek, gameweek.LastGameweek)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, principal.UpstreamToken, leagueID)
	if err != nil {
		return ChipBoard{}, fmt.Errorf("list league teams: %w", err)
	}

	board := ChipBoard{
		LeagueID: leagueID,
		Gameweek: gw,
		Phase:    int(chip.PhaseOf(gw)),
		Teams:    make([]TeamChipState, 0, len(teams)),
	}
	if len(teams) == 0 {
		return board, nil
	}

	workerCount := s.workers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ChipBoard{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type result struct {
		state TeamChipState
		err   error
	}
	results := make(chan result, len(teams))

	var workers sync.WaitGroup
	for _, item := range teams {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			records, err := s.chipRepo.ListHistory(ctx, principal.UpstreamToken, item.ID)
			if err != nil {
				results <- result{err: fmt.Errorf("chip history for team %s: %w", item.ID, err)}
				return
			}
			results <- result{state: teamChipState(item, chip.BuildUsageHistory(records), gw)}
		}); err != nil {
			workers.Done()
			return ChipBoard{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	var errs []error
	for row := range results {
		if row.err != nil {
			errs = append(errs, row.err)
			continue
		}
		board.Teams = append(board.Teams, row.state)
	}
	if len(errs) > 0 {
		return ChipBoard{}, errors.Join(errs...)
	}

	sort.SliceStable(board.Teams, func(i, j int) bool {
		if board.Teams[i].TeamName != board.Teams[j].TeamName {
			return board.Teams[i].TeamName < board.Teams[j].TeamName
		}
		return board.Teams[i].TeamID < board.Teams[j].TeamID
	})

	s.logger.DebugContext(ctx, "chip board built", "league_id", leagueID, "gameweek", gw, "teams", len(board.Teams), "workers", workerCount)
	return board, nil
}

func teamChipState(item team.Team, history chip.UsageHistory, gw int) TeamChipState {
	state := TeamChipState{
		TeamID:      item.ID,
		TeamName:    item.Name,
		ManagerName: item.ManagerName,
		Remaining:   history.Remaining(gw),
		Used:        make(map[string]int),
	}
	for _, kind := range chip.SelectableKinds() {
		if usedAt, ok := history.UsedIn(kind, chip.PhaseOf(gw)); ok {
			state.Used[kind.String()] = usedAt
		}
	}
	return state
}

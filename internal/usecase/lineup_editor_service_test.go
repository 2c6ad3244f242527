package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/chip"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	chipmock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/chip"
	gameweekmock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/gameweek"
	lineupmock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/lineup"
	teammock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var editorNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

type editorFixture struct {
	statusRepo *gameweekmock.Repository
	teamRepo   *teammock.Repository
	lineupRepo *lineupmock.Repository
	chipRepo   *chipmock.Repository
	service    *LineupEditorService
	manager    user.Principal
}

func newEditorFixture(t *testing.T) editorFixture {
	t.Helper()

	f := editorFixture{
		statusRepo: gameweekmock.NewRepository(t),
		teamRepo:   teammock.NewRepository(t),
		lineupRepo: lineupmock.NewRepository(t),
		chipRepo:   chipmock.NewRepository(t),
		manager:    user.Principal{UserID: "user-1", UpstreamToken: "upstream-1"},
	}
	f.service = NewLineupEditorService(f.statusRepo, f.teamRepo, f.lineupRepo, f.chipRepo, nil)
	f.service.SetClock(clockwork.NewFakeClockAt(editorNow))
	return f
}

func (f editorFixture) expectPage(status gameweek.Status, item lineup.Lineup, history []chip.Record) {
	f.statusRepo.On("GetStatus", mock.Anything, "upstream-1").Return(status, nil).Once()
	f.teamRepo.On("GetByID", mock.Anything, "upstream-1", "team-1").
		Return(team.Team{ID: "team-1", Name: "Garuda FC", ManagerUserID: "user-1"}, nil).Once()
	f.lineupRepo.On("GetByTeamAndGameweek", mock.Anything, "upstream-1", "team-1", item.Gameweek).Return(item, nil).Once()
	f.chipRepo.On("ListHistory", mock.Anything, "upstream-1", "team-1").Return(history, nil).Once()
}

func threeStarters() []lineup.Pick {
	return []lineup.Pick{
		{PlayerID: "p1", IsStarter: true, IsCaptain: true},
		{PlayerID: "p2", IsStarter: true},
		{PlayerID: "p3", IsStarter: true},
		{PlayerID: "p4"},
	}
}

func TestLineupEditorService_Load_NextGameweekIsEditable(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	statusDeadline := editorNow.Add(72 * time.Hour)
	lineupDeadline := editorNow.Add(48 * time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &statusDeadline, NextID: 11},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters(), DeadlineTime: &lineupDeadline},
		[]chip.Record{{Gameweek: 5, ActiveChip: chip.KindBenchBoost}},
	)

	view, err := f.service.Load(t.Context(), f.manager, "team-1", 11)
	require.NoError(t, err)

	if !view.EditWindow.IsEditable || !view.IsManager {
		t.Fatalf("expected editable view for manager, got %+v", view.EditWindow)
	}
	if view.Countdown != "2d 0h 0m 0s" {
		t.Fatalf("lineup deadline must win over status deadline, got %q", view.Countdown)
	}
	if view.Lineup.ActiveChip != chip.KindNone {
		t.Fatalf("empty chip must default to none, got %q", view.Lineup.ActiveChip)
	}
	for _, option := range view.Chips {
		if option.Kind == chip.KindBenchBoost && option.Available {
			t.Fatalf("benchBoost used in gw5 must be locked for gw11")
		}
	}
}

func TestLineupEditorService_Load_CurrentGameweekIsReadOnly(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(48 * time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 10, Picks: threeStarters()},
		nil,
	)

	view, err := f.service.Load(t.Context(), f.manager, "team-1", 10)
	require.NoError(t, err)
	if view.EditWindow.IsEditable {
		t.Fatalf("started gameweek must be read only")
	}
}

func TestLineupEditorService_Load_DefaultGameweekFetchesStatusOnce(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline, NextID: 11},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		nil,
	)

	view, err := f.service.Load(t.Context(), f.manager, "team-1", 0)
	require.NoError(t, err)
	require.Equal(t, 11, view.Gameweek)
	require.Equal(t, 10, view.Status.CurrentID)
	require.True(t, view.EditWindow.IsEditable)
	f.statusRepo.AssertNumberOfCalls(t, "GetStatus", 1)
}

func TestLineupEditorService_Load_UpstreamFailureFailsPage(t *testing.T) {
	t.Parallel()

	statusRepo := gameweekmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)
	chipRepo := chipmock.NewRepository(t)
	service := NewLineupEditorService(statusRepo, teamRepo, lineupRepo, chipRepo, nil)

	statusRepo.On("GetStatus", mock.Anything, "upstream-1").Return(gameweek.Status{CurrentID: 10}, nil).Maybe()
	teamRepo.On("GetByID", mock.Anything, "upstream-1", "team-1").Return(team.Team{}, ErrDependencyUnavailable).Once()
	lineupRepo.On("GetByTeamAndGameweek", mock.Anything, "upstream-1", "team-1", 11).Return(lineup.Lineup{}, nil).Maybe()
	chipRepo.On("ListHistory", mock.Anything, "upstream-1", "team-1").Return(nil, nil).Maybe()

	_, err := service.Load(t.Context(), user.Principal{UserID: "user-1", UpstreamToken: "upstream-1"}, "team-1", 11)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestLineupEditorService_Save_RejectsStarterCountBeforeNetwork(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	for _, picks := range [][]lineup.Pick{
		{{PlayerID: "p1", IsStarter: true, IsCaptain: true}, {PlayerID: "p2", IsStarter: true}},
		{
			{PlayerID: "p1", IsStarter: true, IsCaptain: true},
			{PlayerID: "p2", IsStarter: true},
			{PlayerID: "p3", IsStarter: true},
			{PlayerID: "p4", IsStarter: true},
		},
	} {
		_, err := f.service.Save(t.Context(), f.manager, SaveInput{TeamID: "team-1", Gameweek: 11, Picks: picks})
		if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, lineup.ErrStarterCount) {
			t.Fatalf("expected starter count error, got %v", err)
		}
	}
}

func TestLineupEditorService_Save_RejectsMissingCaptain(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	picks := []lineup.Pick{
		{PlayerID: "p1", IsStarter: true},
		{PlayerID: "p2", IsStarter: true},
		{PlayerID: "p3", IsStarter: true},
	}
	_, err := f.service.Save(t.Context(), f.manager, SaveInput{TeamID: "team-1", Gameweek: 11, Picks: picks})
	if !errors.Is(err, lineup.ErrCaptainCount) {
		t.Fatalf("expected captain error, got %v", err)
	}
}

func TestLineupEditorService_Save_RejectsUsedChip(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		[]chip.Record{{Gameweek: 4, ActiveChip: chip.KindFreeHit}},
	)

	_, err := f.service.Save(t.Context(), f.manager, SaveInput{
		TeamID: "team-1", Gameweek: 11, Picks: threeStarters(), ActiveChip: "freeHit",
	})
	if !errors.Is(err, lineup.ErrChipUnavailable) {
		t.Fatalf("expected ErrChipUnavailable, got %v", err)
	}
	f.lineupRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestLineupEditorService_Save_TheBestNeedsConfirmation(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		nil,
	)

	_, err := f.service.Save(t.Context(), f.manager, SaveInput{
		TeamID: "team-1", Gameweek: 11, Picks: threeStarters(), ActiveChip: "theBest",
	})
	if !errors.Is(err, lineup.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}

	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		nil,
	)
	f.lineupRepo.On("Submit", mock.Anything, "upstream-1", mock.MatchedBy(func(s lineup.Submission) bool {
		return s.ActiveChip == chip.KindTheBest && s.Gameweek == 11 && len(s.Picks) == 4
	})).Return("lineup saved", nil).Once()

	result, err := f.service.Save(t.Context(), f.manager, SaveInput{
		TeamID: "team-1", Gameweek: 11, Picks: threeStarters(), ActiveChip: "theBest", Confirmed: true,
	})
	require.NoError(t, err)
	if result.Message != "lineup saved" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestLineupEditorService_Save_ClosedWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gw       int
		deadline time.Time
	}{
		{name: "started gameweek", gw: 10, deadline: editorNow.Add(time.Hour)},
		{name: "deadline passed", gw: 11, deadline: editorNow.Add(-time.Second)},
		{name: "far future gameweek", gw: 12, deadline: editorNow.Add(time.Hour)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newEditorFixture(t)
			deadline := tc.deadline
			f.expectPage(
				gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
				lineup.Lineup{TeamID: "team-1", Gameweek: tc.gw, Picks: threeStarters()},
				nil,
			)

			_, err := f.service.Save(t.Context(), f.manager, SaveInput{TeamID: "team-1", Gameweek: tc.gw, Picks: threeStarters()})
			if !errors.Is(err, ErrEditWindowClosed) {
				t.Fatalf("expected ErrEditWindowClosed, got %v", err)
			}
		})
	}
}

func TestLineupEditorService_Save_NonManagerForbidden(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		nil,
	)

	visitor := user.Principal{UserID: "user-2", UpstreamToken: "upstream-1"}
	_, err := f.service.Save(t.Context(), visitor, SaveInput{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestLineupEditorService_Save_SubmitFailureIsReturned(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)
	deadline := editorNow.Add(time.Hour)
	f.expectPage(
		gameweek.Status{CurrentID: 10, DeadlineTime: &deadline},
		lineup.Lineup{TeamID: "team-1", Gameweek: 11, Picks: threeStarters()},
		[]chip.Record{{Gameweek: 11, ActiveChip: chip.KindBenchBoost}},
	)
	f.lineupRepo.On("Submit", mock.Anything, "upstream-1", mock.Anything).
		Return("", ErrDependencyUnavailable).Once()

	_, err := f.service.Save(t.Context(), f.manager, SaveInput{
		TeamID: "team-1", Gameweek: 11, Picks: threeStarters(), ActiveChip: "benchBoost",
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestLineupEditorService_Apply(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)

	result, err := f.service.Apply(t.Context(), ApplyInput{
		Picks:  threeStarters(),
		Action: EditActionToggleStarter, PlayerID: "p1",
	})
	require.NoError(t, err)
	if !errors.Is(result.ValidationError, lineup.ErrStarterCount) {
		t.Fatalf("expected starter count verdict, got %v", result.ValidationError)
	}
	if result.Picks[1].IsCaptain != true {
		t.Fatalf("captaincy must move to p2, got %+v", result.Picks)
	}

	result, err = f.service.Apply(t.Context(), ApplyInput{
		Picks:  threeStarters(),
		Action: EditActionSetChip, Chip: "tripleCaptain",
	})
	require.NoError(t, err)
	if result.ActiveChip != chip.KindTripleCaptain || result.ValidationError != nil {
		t.Fatalf("unexpected chip result: %+v", result)
	}

	_, err = f.service.Apply(t.Context(), ApplyInput{Picks: threeStarters(), Action: EditActionSetChip, Chip: "wildcard"})
	if !errors.Is(err, lineup.ErrInvalidChip) {
		t.Fatalf("expected ErrInvalidChip, got %v", err)
	}
}

func TestLineupEditorService_Apply_KeepsCorruptedChip(t *testing.T) {
	t.Parallel()

	f := newEditorFixture(t)

	result, err := f.service.Apply(t.Context(), ApplyInput{
		Picks:      threeStarters(),
		ActiveChip: chip.Kind("corrupted"),
		Action:     EditActionSetCaptain,
		PlayerID:   "p2",
	})
	require.NoError(t, err)
	if !errors.Is(result.ValidationError, lineup.ErrInvalidChip) {
		t.Fatalf("corrupted chip must fail validation, got %v", result.ValidationError)
	}
	if result.ActiveChip != chip.Kind("corrupted") {
		t.Fatalf("chip must not be silently reset, got %q", result.ActiveChip)
	}
}

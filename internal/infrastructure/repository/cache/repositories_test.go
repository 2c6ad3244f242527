package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	teammock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/fantasy-league-portal/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_GetByIDHitsUpstreamOnce(t *testing.T) {
	next := teammock.NewRepository(t)
	next.On("GetByID", mock.Anything, "token-a", "t1").
		Return(team.Team{ID: "t1", Name: "Alpha"}, nil).
		Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.GetByID(context.Background(), "token-a", "t1")
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), "token-b", "t1")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "Alpha", second.Name)
}

func TestTeamRepository_ErrorsAreNotCached(t *testing.T) {
	next := teammock.NewRepository(t)
	next.On("ListByLeague", mock.Anything, "token", "l1").Return(nil, errors.New("boom")).Once()
	next.On("ListByLeague", mock.Anything, "token", "l1").
		Return([]team.Team{{ID: "t1"}, {ID: "t2"}}, nil).
		Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	_, err := repo.ListByLeague(context.Background(), "token", "l1")
	require.Error(t, err)

	items, err := repo.ListByLeague(context.Background(), "token", "l1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	items[0].Name = "mutated"
	again, err := repo.ListByLeague(context.Background(), "token", "l1")
	require.NoError(t, err)
	require.Empty(t, again[0].Name)
}

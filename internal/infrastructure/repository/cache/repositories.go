package cache

import (
	"context"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-league-portal/internal/platform/cache"
)

// TeamRepository caches team metadata. Keys ignore the caller's token: team
// names and managers are visible to every league member.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, accessToken, teamID string) (team.Team, error) {
	return basecache.Load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (team.Team, error) {
		return r.next.GetByID(ctx, accessToken, teamID)
	})
}

func (r *TeamRepository) ListByLeague(ctx context.Context, accessToken, leagueID string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:list:"+leagueID, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListByLeague(ctx, accessToken, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

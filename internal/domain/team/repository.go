package team

import "context"

// Repository describes team lookups needed by use cases.
type Repository interface {
	GetByID(ctx context.Context, accessToken, teamID string) (Team, error)
	ListByLeague(ctx context.Context, accessToken, leagueID string) ([]Team, error)
}

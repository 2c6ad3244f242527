package chip

import "context"

// Repository returns a team's chip activations, one record per reported gameweek.
type Repository interface {
	ListHistory(ctx context.Context, accessToken, teamID string) ([]Record, error)
}

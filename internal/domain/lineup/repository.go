package lineup

import "context"

// Repository reads and persists lineups on behalf of an authenticated manager.
type Repository interface {
	GetByTeamAndGameweek(ctx context.Context, accessToken, teamID string, gameweek int) (Lineup, error)
	Submit(ctx context.Context, accessToken string, submission Submission) (string, error)
}

package gameweek

import "context"

// Repository exposes the league calendar.
type Repository interface {
	GetStatus(ctx context.Context, accessToken string) (Status, error)
	SyncDeadlines(ctx context.Context, accessToken string) (string, error)
}

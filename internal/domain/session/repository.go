package session

import (
	"context"
	"time"
)

// Repository stores sessions by token.
type Repository interface {
	Get(ctx context.Context, token string) (Session, bool, error)
	Upsert(ctx context.Context, session Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	"github.com/stretchr/testify/require"
)

// Runs only against a migrated database, e.g.
// TEST_DB_URL=postgres://localhost:5432/portal_test?sslmode=disable
func TestSessionRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set")
	}

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	repo := NewSessionRepository(db)
	now := time.Now().UTC().Truncate(time.Second)
	token := "test-" + now.Format("20060102150405.000000000")

	require.NoError(t, repo.Upsert(ctx, session.Session{
		Token:         token,
		UserID:        "u1",
		Username:      "alice",
		DisplayName:   "Alice",
		UpstreamToken: "up",
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Hour),
	}))

	got, ok, err := repo.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", got.Username)
	require.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))

	require.NoError(t, repo.Delete(ctx, token))
	_, ok, err = repo.Get(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.GreaterOrEqual(t, removed, 1)
}

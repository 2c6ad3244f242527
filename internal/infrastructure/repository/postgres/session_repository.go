package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	qb "github.com/riskibarqy/fantasy-league-portal/internal/platform/querybuilder"
)

const sessionsTable = "portal_sessions"

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Get(ctx context.Context, token string) (session.Session, bool, error) {
	query, args, err := qb.Select("*").From(sessionsTable).
		Where(
			qb.Eq("token", token),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isUnnamedPreparedStatementMissing(err) {
		err = r.db.GetContext(ctx, &row, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) Upsert(ctx context.Context, item session.Session) error {
	insertModel := sessionInsertModel{
		Token:         item.Token,
		UserID:        item.UserID,
		Username:      item.Username,
		DisplayName:   item.DisplayName,
		IsAdmin:       item.IsAdmin,
		UpstreamToken: item.UpstreamToken,
		CreatedAt:     item.CreatedAt.UTC(),
		ExpiresAt:     item.ExpiresAt.UTC(),
	}

	query, args, err := qb.UpsertModel(sessionsTable, insertModel, qb.UpsertOptions{
		ConflictColumns: []string{"token"},
		Preserve:        []string{"created_at"},
		SetExprs:        []string{"updated_at = NOW()", "deleted_at = NULL"},
	})
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Delete soft-deletes the session; DeleteExpired removes the rows later.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query, args, err := qb.Update(sessionsTable).
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("token", token),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query, args, err := qb.DeleteFrom(sessionsTable).
		Where(qb.Or(
			qb.Expr("expires_at <= ?", now.UTC()),
			qb.Expr("deleted_at IS NOT NULL"),
		)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build purge sessions query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, fmt.Errorf("purge sessions: %w (run cmd/migration first)", err)
		}
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions rows affected: %w", err)
	}
	return int(affected), nil
}

func sessionFromRow(row sessionTableModel) session.Session {
	return session.Session{
		Token:         row.Token,
		UserID:        row.UserID,
		Username:      row.Username,
		DisplayName:   row.DisplayName,
		IsAdmin:       row.IsAdmin,
		UpstreamToken: row.UpstreamToken,
		CreatedAt:     row.CreatedAt.UTC(),
		ExpiresAt:     row.ExpiresAt.UTC(),
	}
}

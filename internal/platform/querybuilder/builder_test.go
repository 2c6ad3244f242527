package querybuilder

import (
	"strings"
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("token", "user_id").
		From("portal_sessions").
		Where(Eq("token", "tok-1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT token, user_id FROM portal_sessions WHERE token = $1 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "tok-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModel_SkipsUntaggedFields(t *testing.T) {
	type row struct {
		Token   string `db:"token"`
		UserID  string `db:"user_id"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := UpsertModel("portal_sessions", row{Token: "tok-1", UserID: "u1"}, UpsertOptions{
		ConflictColumns: []string{"token"},
	})
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO portal_sessions (token, user_id) VALUES ($1, $2) ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "tok-1" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	opts := UpsertOptions{ConflictColumns: []string{"token"}}
	if _, _, err := UpsertModel("portal_sessions", (*row)(nil), opts); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := UpsertModel("portal_sessions", 42, opts); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		Token     string `db:"token"`
		UserID    string `db:"user_id"`
		CreatedAt string `db:"created_at"`
	}

	query, args, err := UpsertModel("portal_sessions", &row{Token: "tok-1", UserID: "u1", CreatedAt: "now"}, UpsertOptions{
		ConflictColumns: []string{"token"},
		Preserve:        []string{"created_at"},
		SetExprs:        []string{"updated_at = NOW()"},
	})
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO portal_sessions (token, user_id, created_at) VALUES ($1, $2, $3) " +
		"ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = NOW()"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = UpsertModel("portal_sessions", row{Token: "tok-1"}, UpsertOptions{
		ConflictColumns: []string{"token", "user_id", "created_at"},
	})
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}
	if want := "ON CONFLICT (token, user_id, created_at) DO NOTHING"; !strings.HasSuffix(query, want) {
		t.Fatalf("expected DO NOTHING when nothing is left to update, got %s", query)
	}

	if _, _, err := UpsertModel("portal_sessions", row{}, UpsertOptions{}); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("portal_sessions").
		Set("display_name", "Alice").
		SetExpr("deleted_at", "NOW()").
		Where(Eq("token", "tok-1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE portal_sessions SET display_name = $1, deleted_at = NOW() WHERE token = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Alice" || args[1] != "tok-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	query, args, err := DeleteFrom("portal_sessions").
		Where(Or(Expr("expires_at <= ?", now), Expr("deleted_at IS NOT NULL"))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM portal_sessions WHERE (expires_at <= $1 OR deleted_at IS NOT NULL)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != now {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("portal_sessions").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to be rejected")
	}
}

func TestExprKeepsUnboundPlaceholders(t *testing.T) {
	query, args, err := Select("token").
		From("portal_sessions").
		Where(Expr("user_id = ? AND note = '?'", "u1"), Or()).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT token FROM portal_sessions WHERE user_id = $1 AND note = '?' AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

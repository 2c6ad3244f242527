package postgres

import "time"

type sessionTableModel struct {
	Token         string     `db:"token"`
	UserID        string     `db:"user_id"`
	Username      string     `db:"username"`
	DisplayName   string     `db:"display_name"`
	IsAdmin       bool       `db:"is_admin"`
	UpstreamToken string     `db:"upstream_token"`
	CreatedAt     time.Time  `db:"created_at"`
	ExpiresAt     time.Time  `db:"expires_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type sessionInsertModel struct {
	Token         string    `db:"token"`
	UserID        string    `db:"user_id"`
	Username      string    `db:"username"`
	DisplayName   string    `db:"display_name"`
	IsAdmin       bool      `db:"is_admin"`
	UpstreamToken string    `db:"upstream_token"`
	CreatedAt     time.Time `db:"created_at"`
	ExpiresAt     time.Time `db:"expires_at"`
}

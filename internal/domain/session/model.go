package session

import (
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
)

// Session binds a portal token to the principal that logged in with it.
type Session struct {
	Token         string
	UserID        string
	Username      string
	DisplayName   string
	IsAdmin       bool
	UpstreamToken string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s Session) Principal() user.Principal {
	return user.Principal{
		UserID:        s.UserID,
		Username:      s.Username,
		DisplayName:   s.DisplayName,
		IsAdmin:       s.IsAdmin,
		UpstreamToken: s.UpstreamToken,
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	idgen "github.com/riskibarqy/fantasy-league-portal/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService owns the login/logout/restore lifecycle of portal sessions.
type SessionService struct {
	auth   user.Authenticator
	repo   session.Repository
	idGen  idgen.Generator
	ttl    time.Duration
	clock  clockwork.Clock
	logger *logging.Logger
}

func NewSessionService(
	auth user.Authenticator,
	repo session.Repository,
	idGen idgen.Generator,
	ttl time.Duration,
	logger *logging.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		auth:   auth,
		repo:   repo,
		idGen:  idGen,
		ttl:    ttl,
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
}

func (s *SessionService) SetClock(clock clockwork.Clock) {
	if clock != nil {
		s.clock = clock
	}
}

func (s *SessionService) Login(ctx context.Context, credentials user.Credentials) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Login")
	defer span.End()

	credentials.Username = strings.TrimSpace(credentials.Username)
	if err := credentials.Validate(); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	principal, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return session.Session{}, fmt.Errorf("login %s: %w", credentials.Username, err)
	}
	if strings.TrimSpace(principal.UserID) == "" {
		return session.Session{}, fmt.Errorf("%w: login returned empty user id", ErrUnauthorized)
	}

	token, err := s.idGen.NewID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.clock.Now().UTC()
	item := session.Session{
		Token:         token,
		UserID:        principal.UserID,
		Username:      principal.Username,
		DisplayName:   principal.DisplayName,
		IsAdmin:       principal.IsAdmin,
		UpstreamToken: principal.UpstreamToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	if item.Username == "" {
		item.Username = credentials.Username
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return session.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.logger.InfoContext(ctx, "session created", "user_id", item.UserID, "is_admin", item.IsAdmin)
	return item, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: session token is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Restore returns the live session for token. Expired sessions are deleted
// and reported as absent.
func (s *SessionService) Restore(ctx context.Context, token string) (session.Session, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Restore")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" || !idgen.Valid(token) {
		return session.Session{}, false, nil
	}

	item, exists, err := s.repo.Get(ctx, token)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return session.Session{}, false, nil
	}

	if item.Expired(s.clock.Now()) {
		if err := s.repo.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "user_id", item.UserID, "error", err)
		}
		return session.Session{}, false, nil
	}

	return item, true, nil
}

// VerifyAccessToken resolves a portal bearer token into a principal.
func (s *SessionService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	item, exists, err := s.Restore(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: session expired or unknown", ErrUnauthorized)
	}
	return item.Principal(), nil
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.PurgeExpired")
	defer span.End()

	removed, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "expired sessions purged", "count", removed)
	}
	return removed, nil
}

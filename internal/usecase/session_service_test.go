package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
	sessionmock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/session"
	usermock "github.com/riskibarqy/fantasy-league-portal/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSessionToken = "0b8f6c8e-7a52-4d8e-9a55-6a2d6d2b1f10"

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func TestSessionService_Login_StoresSession(t *testing.T) {
	t.Parallel()

	auth := usermock.NewAuthenticator(t)
	repo := sessionmock.NewRepository(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	service := NewSessionService(auth, repo, fixedIDGenerator{id: testSessionToken}, 2*time.Hour, nil)
	service.SetClock(clock)

	creds := user.Credentials{Username: "manager", Password: "secret"}
	auth.On("Login", mock.Anything, creds).
		Return(user.Principal{UserID: "user-1", DisplayName: "Manager", UpstreamToken: "upstream-1"}, nil).
		Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s session.Session) bool {
		return s.Token == testSessionToken &&
			s.UserID == "user-1" &&
			s.Username == "manager" &&
			s.ExpiresAt.Equal(clock.Now().UTC().Add(2*time.Hour))
	})).Return(nil).Once()

	got, err := service.Login(t.Context(), user.Credentials{Username: " manager ", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, testSessionToken, got.Token)
	require.Equal(t, "upstream-1", got.UpstreamToken)
}

func TestSessionService_Login_RejectsBadCredentials(t *testing.T) {
	t.Parallel()

	auth := usermock.NewAuthenticator(t)
	repo := sessionmock.NewRepository(t)
	service := NewSessionService(auth, repo, fixedIDGenerator{id: testSessionToken}, time.Hour, nil)

	_, err := service.Login(t.Context(), user.Credentials{Username: "manager"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	auth.On("Login", mock.Anything, mock.Anything).Return(user.Principal{}, ErrUnauthorized).Once()
	_, err = service.Login(t.Context(), user.Credentials{Username: "manager", Password: "wrong"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSessionService_Restore(t *testing.T) {
	t.Parallel()

	auth := usermock.NewAuthenticator(t)
	repo := sessionmock.NewRepository(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service := NewSessionService(auth, repo, fixedIDGenerator{}, time.Hour, nil)
	service.SetClock(clockwork.NewFakeClockAt(now))

	live := session.Session{Token: testSessionToken, UserID: "user-1", ExpiresAt: now.Add(time.Minute)}
	repo.On("Get", mock.Anything, testSessionToken).Return(live, true, nil).Once()

	got, ok, err := service.Restore(t.Context(), testSessionToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "user-1", got.UserID)

	expired := live
	expired.ExpiresAt = now
	repo.On("Get", mock.Anything, testSessionToken).Return(expired, true, nil).Once()
	repo.On("Delete", mock.Anything, testSessionToken).Return(nil).Once()

	_, ok, err = service.Restore(t.Context(), testSessionToken)
	require.NoError(t, err)
	require.False(t, ok, "expired session must be reported absent")

	_, ok, err = service.Restore(t.Context(), "not-a-uuid")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionService_VerifyAccessToken(t *testing.T) {
	t.Parallel()

	repo := sessionmock.NewRepository(t)
	service := NewSessionService(usermock.NewAuthenticator(t), repo, fixedIDGenerator{}, time.Hour, nil)

	repo.On("Get", mock.Anything, testSessionToken).Return(session.Session{}, false, nil).Once()
	_, err := service.VerifyAccessToken(t.Context(), testSessionToken)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	repo.On("Get", mock.Anything, testSessionToken).Return(session.Session{}, false, errors.New("db down")).Once()
	_, err = service.VerifyAccessToken(t.Context(), testSessionToken)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSessionService_LogoutAndPurge(t *testing.T) {
	t.Parallel()

	repo := sessionmock.NewRepository(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service := NewSessionService(usermock.NewAuthenticator(t), repo, fixedIDGenerator{}, time.Hour, nil)
	service.SetClock(clockwork.NewFakeClockAt(now))

	repo.On("Delete", mock.Anything, testSessionToken).Return(nil).Once()
	require.NoError(t, service.Logout(t.Context(), testSessionToken))

	if err := service.Logout(t.Context(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	repo.On("DeleteExpired", mock.Anything, now).Return(3, nil).Once()
	removed, err := service.PurgeExpired(t.Context())
	require.NoError(t, err)
	require.Equal(t, 3, removed)
}

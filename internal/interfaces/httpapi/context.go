package httpapi

import (
	"context"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/user"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	accessTokenContextKey contextKey = "auth_access_token"
)

func withPrincipal(ctx context.Context, p user.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, p)
	return context.WithValue(ctx, accessTokenContextKey, token)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// accessTokenFromContext returns the portal session token the request was
// authenticated with.
func accessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenContextKey).(string)
	return token
}

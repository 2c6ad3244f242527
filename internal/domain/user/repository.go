package user

import "context"

// Authenticator exchanges credentials for a principal at the league API.
type Authenticator interface {
	Login(ctx context.Context, credentials Credentials) (Principal, error)
}

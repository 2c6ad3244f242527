package user

import "fmt"

// Principal is the authenticated caller of the portal.
// UpstreamToken is forwarded to the league API as a bearer token.
type Principal struct {
	UserID        string
	Username      string
	DisplayName   string
	IsAdmin       bool
	UpstreamToken string
}

type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers such as session tokens.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random (version 4) UUID.
func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Valid reports whether raw parses as a UUID. Used to reject malformed
// tokens before touching the session store.
func Valid(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}

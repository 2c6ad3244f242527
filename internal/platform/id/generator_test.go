package id

import "testing"

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()

	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}
	if !Valid(first) {
		t.Fatalf("generated id %q must be valid", first)
	}
	if Valid("not-a-token") {
		t.Fatalf("malformed token must be rejected")
	}
}

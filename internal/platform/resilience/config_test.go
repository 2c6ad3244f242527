package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreakerConfig_Normalized(t *testing.T) {
	t.Parallel()

	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: 0, OpenTimeout: -time.Second, HalfOpenMaxReq: 3}.Normalized()
	want := CircuitBreakerConfig{Enabled: true, FailureThreshold: 5, OpenTimeout: 15 * time.Second, HalfOpenMaxReq: 3}
	if got != want {
		t.Fatalf("unexpected normalized config: got=%+v want=%+v", got, want)
	}

	if NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}) != nil {
		t.Fatalf("disabled config must not build a breaker")
	}
}

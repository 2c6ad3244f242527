package logging

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_InfoContextWritesFieldsAndMirrors(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core))

	var (
		mu       sync.Mutex
		mirrored []string
	)
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		mirrored = append(mirrored, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.With("component", "test").InfoContext(context.Background(), "session restored", "user_id", "u-1")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "u-1" || fields["component"] != "test" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(mirrored) != 1 || mirrored[0] != "info:session restored" {
		t.Fatalf("unexpected mirrored entries: %v", mirrored)
	}
}

func TestLogger_BelowLevelIsNotMirrored(t *testing.T) {
	core, logs := observer.New(LevelWarn)
	logger := FromZap(zap.New(core))

	calls := 0
	SetMirror(func(context.Context, Level, string, ...any) { calls++ })
	t.Cleanup(func() { SetMirror(nil) })

	logger.DebugContext(context.Background(), "tick")
	if logs.Len() != 0 || calls != 0 {
		t.Fatalf("debug entry must be dropped, logs=%d mirrored=%d", logs.Len(), calls)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
	}{
		{raw: "", want: LevelInfo},
		{raw: "DEBUG", want: LevelDebug},
		{raw: "warning", want: LevelWarn},
		{raw: "error", want: LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.raw)
		if err != nil || got != tc.want {
			t.Fatalf("ParseLevel(%q): got=%v err=%v", tc.raw, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"a", 1, 2, "b"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" {
		t.Fatalf("non-string key must fall back to arg, got %q", fields[1].Key)
	}
}

package hmacrng

import (
	"bytes"
	"context"
	"testing"

	"github.com/rayozzie/hmacrng/pkg/trace"
)

// TestNewDefaultSeeds verifies that a default generator gathers enough
// material from its source catalogue to seed on the first reseed.
func TestNewDefaultSeeds(t *testing.T) {
	tracer := trace.NewTracer("TEST", trace.LogLevelNormal)
	ctx := trace.WithContext(context.Background(), tracer)

	g := NewDefault()
	defer g.Close()

	if g.IsSeeded() {
		t.Fatal("default generator reports seeded before any reseed")
	}

	g.Reseed(ctx)
	if !g.IsSeeded() {
		t.Fatal("default generator failed to seed from the default sources")
	}

	a := make([]byte, 64)
	b := make([]byte, 64)
	if err := g.Randomize(ctx, a); err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	if err := g.Randomize(ctx, b); err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("consecutive outputs are identical")
	}
	if bytes.Equal(a, make([]byte, 64)) {
		t.Error("output is all zero")
	}
}

// TestDefaultSources verifies the catalogue order, which is also the
// reseed polling order.
func TestDefaultSources(t *testing.T) {
	names := []string{"system", "timer", "chacha20", "prng"}
	sources := DefaultSources()
	if len(sources) != len(names) {
		t.Fatalf("DefaultSources returned %d sources, want %d", len(sources), len(names))
	}
	for i, want := range names {
		if got := sources[i].Name(); got != want {
			t.Errorf("source %d is %q, want %q", i, got, want)
		}
	}
}

package entropy

import (
	"bytes"
	"testing"
)

// liveSources returns one instance of every non-deterministic source.
func liveSources() map[string]Source {
	return map[string]Source{
		"system":   &SystemSource{},
		"timer":    &TimerSource{},
		"chacha20": NewChaCha20Source(),
		"prng":     NewPRNGSource(),
	}
}

// TestPollBounds verifies that both poll tiers write within the buffer and
// report accurate counts.
func TestPollBounds(t *testing.T) {
	for name, src := range liveSources() {
		t.Run(name, func(t *testing.T) {
			buf := make([]byte, 128)

			n := src.FastPoll(buf)
			if n < 0 || n > len(buf) {
				t.Errorf("FastPoll reported %d bytes for a %d-byte buffer", n, len(buf))
			}
			if n == 0 {
				t.Errorf("FastPoll returned no bytes")
			}

			n = src.SlowPoll(buf)
			if n < 0 || n > len(buf) {
				t.Errorf("SlowPoll reported %d bytes for a %d-byte buffer", n, len(buf))
			}
			if n == 0 {
				t.Errorf("SlowPoll returned no bytes")
			}
		})
	}
}

// TestSlowPollFillsBuffer verifies the deep-collection tier fills the whole
// scratch buffer for the sources that promise to.
func TestSlowPollFillsBuffer(t *testing.T) {
	for _, name := range []string{"system", "chacha20", "prng"} {
		src := liveSources()[name]
		buf := make([]byte, 128)
		if n := src.SlowPoll(buf); n != len(buf) {
			t.Errorf("%s SlowPoll filled %d of %d bytes", name, n, len(buf))
		}
	}
}

// TestStreamSourcesVary verifies that keystream-backed sources do not
// repeat output across consecutive polls.
func TestStreamSourcesVary(t *testing.T) {
	for _, name := range []string{"system", "chacha20", "prng"} {
		src := liveSources()[name]
		a := make([]byte, 64)
		b := make([]byte, 64)
		src.FastPoll(a)
		src.FastPoll(b)
		if bytes.Equal(a, b) {
			t.Errorf("%s produced identical output on consecutive fast polls", name)
		}
	}
}

// TestCounterSourceDeterminism verifies the test double repeats exactly for
// equal initial values and diverges for different ones.
func TestCounterSourceDeterminism(t *testing.T) {
	a := NewCounterSource(7)
	b := NewCounterSource(7)

	bufA := make([]byte, 300)
	bufB := make([]byte, 300)
	if n := a.FastPoll(bufA); n != len(bufA) {
		t.Fatalf("FastPoll filled %d of %d bytes", n, len(bufA))
	}
	b.FastPoll(bufB)
	if !bytes.Equal(bufA, bufB) {
		t.Error("counter sources with equal initial values diverged")
	}

	c := NewCounterSource(8)
	bufC := make([]byte, 300)
	c.SlowPoll(bufC)
	if bytes.Equal(bufA, bufC) {
		t.Error("counter sources with different initial values agree")
	}

	// The counter continues across polls rather than restarting. 307 polls
	// from an initial value of 7 wrap the byte counter around to 51.
	want := byte((7 + 300) % 256)
	next := make([]byte, 4)
	a.FastPoll(next)
	if next[0] != want {
		t.Errorf("counter did not continue across polls: got %d, want %d", next[0], want)
	}
}

// TestSourceNames verifies the informational identifiers.
func TestSourceNames(t *testing.T) {
	want := map[string]Source{
		"system":   &SystemSource{},
		"timer":    &TimerSource{},
		"chacha20": NewChaCha20Source(),
		"prng":     NewPRNGSource(),
		"counter":  NewCounterSource(0),
	}
	for name, src := range want {
		if got := src.Name(); got != name {
			t.Errorf("Name() = %q, want %q", got, name)
		}
	}
}

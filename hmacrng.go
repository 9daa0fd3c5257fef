// Package hmacrng assembles ready-to-use generators from the building blocks
// in pkg/mac, pkg/entropy, and pkg/rng.
//
// The generator itself lives in pkg/rng; this package only picks defaults:
// HMAC-SHA-256 for both keyed-PRF roles and the standard source catalogue.
// Callers with specific algorithm or source requirements should compose
// rng.New directly.
package hmacrng

import (
	"github.com/rayozzie/hmacrng/pkg/entropy"
	"github.com/rayozzie/hmacrng/pkg/mac"
	"github.com/rayozzie/hmacrng/pkg/rng"
)

// NewDefault returns a generator with HMAC-SHA-256 in both the extractor
// and PRF roles and the default entropy sources registered.
//
// The generator starts unseeded: call Reseed (or let the first Randomize
// force one) before expecting output. With the default sources a single
// reseed normally gathers enough material to seed.
func NewDefault() *rng.Generator {
	g := rng.New(mac.NewHMACSHA256(), mac.NewHMACSHA256())
	for _, src := range DefaultSources() {
		g.AddEntropySource(src)
	}
	return g
}

// DefaultSources returns the standard entropy source set:
//  1. The operating system's random device, the primary supply.
//  2. Timing jitter from the high-resolution clock.
//  3. A ChaCha20 keystream keyed from the OS at startup.
//  4. A crypto-seeded Mersenne Twister.
//
// Sources 2-4 are defense-in-depth mixing material; the security of a
// default generator rests on the system source. Everything is whitened by
// the extractor, so a weak source can never degrade the output.
func DefaultSources() []entropy.Source {
	return []entropy.Source{
		&entropy.SystemSource{},
		&entropy.TimerSource{},
		entropy.NewChaCha20Source(),
		entropy.NewPRNGSource(),
	}
}

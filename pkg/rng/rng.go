// Package rng implements a cryptographically secure pseudorandom number
// generator built from an extract-then-expand construction.
//
// Two keyed pseudorandom functions cooperate: an extractor accumulates
// entropy polled from registered sources (plus any caller-supplied input)
// and compresses it into a pseudorandom key (PRK), and a PRF expands that
// key into the output stream. The generator refuses to emit a single byte
// until its conservative entropy accounting says enough material has been
// gathered, and it forces a rekey after a bounded amount of output so that
// one compromised key never exposes more than a window of the stream.
//
// Security properties:
//   - Output is gated: an unseeded generator fails Randomize without
//     writing anything, rather than emitting predictable bytes.
//   - Every reseed folds forward PRF output derived from the previous key,
//     so a weak poll cannot displace earlier keying material.
//   - The extractor's own key rotates on every reseed, so no two reseeds
//     extract under the same salt even if source output collides.
//   - Entropy is counted at a flat, deliberately conservative 1 bit per
//     byte and clamped to the extractor output size after each reseed;
//     the generator never attempts to measure real entropy.
//
// Concurrency: a Generator has no internal locking. All operations mutate
// shared state and must be serialized by the caller, either with one lock
// per instance or by confining the instance to a single goroutine. The
// context parameter on mutating operations carries the trace logger only;
// no operation suspends or honors cancellation.
package rng

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rayozzie/hmacrng/pkg/entropy"
	"github.com/rayozzie/hmacrng/pkg/mac"
	"github.com/rayozzie/hmacrng/pkg/trace"
)

// ErrUnseeded is returned by Randomize when a forced reseed attempt still
// leaves the generator below its entropy threshold. It is the only failure
// the generator can report; callers may retry after registering more
// sources or supplying input through AddEntropy.
var ErrUnseeded = errors.New("generator is unseeded")

const (
	// reseedCounterThreshold caps how many PRF derivations may run under a
	// single PRK before Randomize forces a rekey. With a 32-byte PRF that
	// bounds output per key at roughly 32 MiB; a wrapping generator that
	// reseeds this one periodically sees forced reseeds about every 16 MiB
	// of cumulative output.
	reseedCounterThreshold = 1 << 20

	// fastPollModulus controls the opportunistic fast poll on the output
	// path: one source is polled whenever the derivation counter lands on
	// a multiple of this value after a fill.
	fastPollModulus = 65536

	// ioBufferSize is the scratch buffer size for source polls.
	ioBufferSize = 128
)

// PRF chain labels. Each purpose gets its own label so that recovering an
// intermediate value from one chain reveals nothing about the others.
const (
	labelOutput = "rng"    // output generation and reseed feedback
	labelReseed = "reseed" // second reseed feedback derivation
	labelSalt   = "xts"    // fresh extractor salt derivation
)

// Fixed, public initial keys for the two MACs. These are NOT secrets: they
// only exist so the PRF and extractor are usable before the first reseed,
// and no output is ever released while IsSeeded is false. Removing that
// gate would make these constants a vulnerability.
const (
	initialPRFKey       = "hmacrng initial PRF key"
	initialExtractorKey = "hmacrng initial extractor salt"
)

// Generator is the extract-then-expand CSPRNG. Create one with New; the
// zero value is not usable.
type Generator struct {
	extractor mac.MAC
	prf       mac.MAC
	sources   []entropy.Source

	// key is K, the evolving PRF register. Its length always equals the
	// PRF output length; each derivation step replaces its contents.
	key []byte

	// counter increments on every PRF derivation step, during output and
	// reseed alike, and resets to zero only on a successful reseed.
	counter uint32

	// entropyEstimate counts bits believed gathered since construction,
	// at a flat 1 bit per polled or supplied byte. It is clamped to
	// 8 * extractor output length after each reseed and zeroed by Clear.
	entropyEstimate uint

	// sourceIndex is the round-robin cursor for opportunistic fast polls.
	sourceIndex int

	// ioBuffer is scratch space for source polls, never retained.
	ioBuffer [ioBufferSize]byte
}

// New creates a generator from an extractor MAC and a PRF MAC. The
// generator takes exclusive ownership of both for its lifetime.
//
// Both MACs are keyed immediately with fixed public constants so the
// feedback path of the first reseed has something to derive from. The
// generator starts unseeded and stays that way until a reseed gathers
// enough material.
func New(extractor, prf mac.MAC) *Generator {
	g := &Generator{
		extractor: extractor,
		prf:       prf,
		key:       make([]byte, prf.OutputLength()),
	}
	g.prf.SetKey([]byte(initialPRFKey))
	g.extractor.SetKey([]byte(initialExtractorKey))
	return g
}

// prfStep is the generator's single derivation primitive. It feeds the
// current register, a purpose label, and the big-endian counter into the
// PRF, replaces the register with the PRF output, and advances the counter.
// Everything else in the generator composes this operation.
func (g *Generator) prfStep(label string) {
	g.prf.Update(g.key)
	g.prf.Update([]byte(label))

	var ctr [4]byte
	binary.BigEndian.PutUint32(ctr[:], g.counter)
	g.prf.Update(ctr[:])

	out := g.prf.Final()
	wipe(g.key)
	g.key = out

	g.counter++
}

// Randomize fills out with pseudorandom bytes, or fails with ErrUnseeded.
//
// If the generator is unseeded, or the derivation counter has reached its
// rekey threshold, a reseed runs first. When the reseed cannot establish
// sufficient entropy the call fails without writing a single byte to out.
//
// After filling, if any sources are registered and the counter landed on a
// fast-poll boundary, one source is fast-polled round-robin and the result
// folded into the extractor for harvest at the next reseed. Nothing polled
// here is credited to the entropy estimate until that reseed.
func (g *Generator) Randomize(ctx context.Context, out []byte) error {
	log := trace.FromContext(ctx).WithPrefix("RNG")

	if !g.IsSeeded() || g.counter >= reseedCounterThreshold {
		log.Debugf("forcing reseed (seeded=%v counter=%d)", g.IsSeeded(), g.counter)
		g.ReseedWithInput(ctx, nil)

		if !g.IsSeeded() {
			err := fmt.Errorf("%s: %w", g.Name(), ErrUnseeded)
			log.Error(err)
			return err
		}
	}

	remaining := out
	for len(remaining) > 0 {
		g.prfStep(labelOutput)
		n := copy(remaining, g.key)
		remaining = remaining[n:]
	}
	log.Debugf("generated %d bytes (counter=%d)", len(out), g.counter)

	if len(g.sources) > 0 && g.counter%fastPollModulus == 0 {
		src := g.sources[g.sourceIndex]
		got := src.FastPoll(g.ioBuffer[:])
		g.sourceIndex = (g.sourceIndex + 1) % len(g.sources)
		g.extractor.Update(g.ioBuffer[:got])
		log.Debugf("opportunistic fast poll of %s source gathered %d bytes", src.Name(), got)
	}

	return nil
}

// ReseedWithInput folds fresh entropy and optional caller-supplied input
// into a new PRK, rekeys the PRF, and resets the derivation counter.
//
// It never fails, but it also does not guarantee the generator ends up
// seeded; that depends on how much material the sources actually returned.
// Callers that need the distinction check IsSeeded afterward.
//
// The order of operations matters and must not be rearranged:
//
//  1. Fast-poll every source, then slow-poll every source, folding each
//     result into the extractor. Cheap collection always runs before
//     expensive collection.
//  2. Fold in the caller's input, if any.
//  3. Feed forward two PRF outputs derived from the pre-reseed register
//     (labels "rng" then "reseed"). Without this, a strong poll followed
//     by a weak one would let the weak poll dominate the new PRK.
//  4. Finalize the extractor into the PRK and rekey the PRF with it.
//  5. Derive a fresh extractor salt from the new PRF (label "xts") and
//     rekey the extractor, so no two reseeds extract under the same key.
//  6. Zero the register, reset the counter, and clamp the entropy estimate
//     to the extractor output size: the extractor cannot hand more
//     min-entropy to the PRF than it emits, no matter how much went in.
func (g *Generator) ReseedWithInput(ctx context.Context, input []byte) {
	log := trace.FromContext(ctx).WithPrefix("RESEED")

	for _, src := range g.sources {
		got := src.FastPoll(g.ioBuffer[:])
		g.entropyEstimate += uint(got)
		g.extractor.Update(g.ioBuffer[:got])
		log.Debugf("fast poll of %s source gathered %d bytes", src.Name(), got)
	}

	for _, src := range g.sources {
		got := src.SlowPoll(g.ioBuffer[:])
		g.entropyEstimate += uint(got)
		g.extractor.Update(g.ioBuffer[:got])
		log.Debugf("slow poll of %s source gathered %d bytes", src.Name(), got)
	}

	if len(input) > 0 {
		g.extractor.Update(input)
		g.entropyEstimate += uint(len(input))
		log.Debugf("folded %d bytes of caller input", len(input))
	}

	// Feed forward output derived from the previous key so every reseed
	// remains tied to all prior keying material.
	g.prfStep(labelOutput)
	g.extractor.Update(g.key)

	g.prfStep(labelReseed)
	g.extractor.Update(g.key)

	// Derive the new PRK from everything folded in and rekey the PRF.
	prk := g.extractor.Final()
	g.prf.SetKey(prk)
	wipe(prk)

	// Rotate the extractor key forward using the freshly keyed PRF.
	g.prfStep(labelSalt)
	g.extractor.SetKey(g.key)

	wipe(g.key)
	g.counter = 0

	if limit := uint(8 * g.extractor.OutputLength()); g.entropyEstimate > limit {
		g.entropyEstimate = limit
	}
	log.Debugf("reseed complete (seeded=%v estimate=%d bits)", g.IsSeeded(), g.entropyEstimate)
}

// Reseed gathers entropy from the registered sources and rekeys. It never
// fails; check IsSeeded for the outcome.
func (g *Generator) Reseed(ctx context.Context) {
	g.ReseedWithInput(ctx, nil)
}

// AddEntropy mixes caller-supplied bytes into a reseed. This is a full
// reseed that additionally folds the input, not a passive accumulation:
// the PRF is rekeyed before AddEntropy returns. Input is credited at the
// flat 1-bit-per-byte estimate. It never fails.
func (g *Generator) AddEntropy(ctx context.Context, input []byte) {
	g.ReseedWithInput(ctx, input)
}

// AddEntropySource appends a source to the polling list. No poll happens
// until the next reseed. The generator owns the source from here on.
func (g *Generator) AddEntropySource(src entropy.Source) {
	g.sources = append(g.sources, src)
}

// IsSeeded reports whether the accumulated entropy estimate meets the
// output threshold. It is a pure predicate with no side effects.
func (g *Generator) IsSeeded() bool {
	return g.entropyEstimate >= uint(8*g.prf.OutputLength())
}

// Clear zeroizes all key material: both MACs destroy their internal keys,
// the register is wiped, and the counter, entropy estimate, and source
// cursor reset. The generator is unseeded afterward but remains usable;
// registered sources stay registered. Clear never fails and calling it
// twice is the same as calling it once.
func (g *Generator) Clear() {
	g.extractor.Clear()
	g.prf.Clear()
	wipe(g.key)
	g.entropyEstimate = 0
	g.counter = 0
	g.sourceIndex = 0
}

// Close zeroizes key material and releases the entropy source handles.
// The generator must not be used afterward.
func (g *Generator) Close() {
	g.Clear()
	g.sources = nil
}

// Name composes a human-readable identifier from the two MAC algorithms.
func (g *Generator) Name() string {
	return "HMAC_RNG(" + g.extractor.Name() + "," + g.prf.Name() + ")"
}

// Read fills p with pseudorandom bytes and reports how many were written.
// It adapts Randomize to the reader shape used elsewhere in this module;
// on failure nothing is written and n is zero.
func (g *Generator) Read(ctx context.Context, p []byte) (n int, err error) {
	if err := g.Randomize(ctx, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// wipe zeroizes a byte slice in place.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

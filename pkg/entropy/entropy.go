// Package entropy defines the entropy source abstraction consumed by the
// hmacrng generator, along with a catalogue of source implementations.
//
// A Source never produces output directly consumed by callers; everything it
// returns is folded through the generator's extractor before any byte reaches
// the public stream. That makes weak or even adversarial sources safe to mix
// in: they can fail to add entropy, but they cannot subtract it.
package entropy

// Source is a single entropy collector with two polling tiers.
//
// FastPoll is expected to be cheap and bounded-time; SlowPoll may be more
// expensive but must still return rather than block indefinitely. Both fill
// a prefix of the caller's buffer and return the number of bytes written.
// Returning zero is valid and simply contributes nothing.
type Source interface {
	FastPoll(buf []byte) int
	SlowPoll(buf []byte) int
	Name() string
}

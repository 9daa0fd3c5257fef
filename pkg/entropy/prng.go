package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"

	"github.com/seehuhn/mt19937"
)

// PRNGSource produces mixing material from a Mersenne Twister seeded from
// the OS generator.
//
// MT19937 is not a cryptographic generator and this source is never credited
// as one: its output is folded through the extractor like any other poll, so
// it provides defense-in-depth mixing without the generator's security ever
// resting on it.
type PRNGSource struct {
	rng     *mt19937.MT19937
	wrapper *mrand.Rand
}

// NewPRNGSource creates an MT19937 source seeded from crypto/rand.
func NewPRNGSource() *PRNGSource {
	mt := mt19937.New()

	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("failed to seed MT19937 source: %v", err))
	}
	mt.Seed(int64(binary.LittleEndian.Uint64(seed[:])))

	return &PRNGSource{
		rng:     mt,
		wrapper: mrand.New(mt),
	}
}

// FastPoll fills the buffer from the twister state.
func (p *PRNGSource) FastPoll(buf []byte) int {
	for i := range buf {
		buf[i] = byte(p.wrapper.Intn(256))
	}
	return len(buf)
}

// SlowPoll reseeds the twister from the OS generator, then fills the buffer.
// A failed reseed keeps the existing state rather than returning nothing.
func (p *PRNGSource) SlowPoll(buf []byte) int {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err == nil {
		p.rng.Seed(int64(binary.LittleEndian.Uint64(seed[:])))
	}
	return p.FastPoll(buf)
}

// Name returns the source identifier.
func (p *PRNGSource) Name() string {
	return "prng"
}

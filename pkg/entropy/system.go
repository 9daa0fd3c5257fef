package entropy

import (
	crand "crypto/rand"
)

// fastPollBytes caps how much a SystemSource fast poll reads from the
// operating system. A fast poll runs on the output path, so it stays small.
const fastPollBytes = 32

// SystemSource collects entropy from the operating system's random device
// via crypto/rand. On Unix-like systems this is typically getrandom(2) or
// /dev/urandom; on Windows it is the platform CSPRNG.
//
// This is the highest-quality source in the catalogue and the one the
// default generator relies on for its security in practice. The remaining
// sources exist for defense in depth.
type SystemSource struct{}

// FastPoll reads a small, bounded amount from the OS generator.
func (s *SystemSource) FastPoll(buf []byte) int {
	n := len(buf)
	if n > fastPollBytes {
		n = fastPollBytes
	}
	if _, err := crand.Read(buf[:n]); err != nil {
		return 0
	}
	return n
}

// SlowPoll fills the entire buffer from the OS generator.
func (s *SystemSource) SlowPoll(buf []byte) int {
	if _, err := crand.Read(buf); err != nil {
		return 0
	}
	return len(buf)
}

// Name returns the source identifier.
func (s *SystemSource) Name() string {
	return "system"
}

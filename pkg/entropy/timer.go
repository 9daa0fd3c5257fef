package entropy

import (
	"encoding/binary"
	"runtime"
	"time"
)

// TimerSource collects timing jitter from the high-resolution clock.
//
// The entropy content of clock samples is low and hard to quantify; the
// generator's flat 1-bit-per-byte accounting deliberately over-counts
// nothing here since the samples are whitened by the extractor before use.
// This source is mixing material, not a primary entropy supply.
type TimerSource struct{}

// FastPoll writes a single nanosecond timestamp.
func (t *TimerSource) FastPoll(buf []byte) int {
	var sample [8]byte
	binary.BigEndian.PutUint64(sample[:], uint64(time.Now().UnixNano()))
	return copy(buf, sample[:])
}

// SlowPoll fills the buffer with successive clock samples, yielding the
// processor between samples so scheduler jitter contributes to the deltas.
func (t *TimerSource) SlowPoll(buf []byte) int {
	prev := time.Now().UnixNano()
	written := 0
	for written+8 <= len(buf) {
		runtime.Gosched()
		now := time.Now().UnixNano()
		binary.BigEndian.PutUint64(buf[written:], uint64(now-prev))
		prev = now
		written += 8
	}
	return written
}

// Name returns the source identifier.
func (t *TimerSource) Name() string {
	return "timer"
}

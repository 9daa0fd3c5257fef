package entropy

// CounterSource is a deterministic Source implementation for testing.
//
// It fills buffers with sequential counter values, so two instances created
// with the same initial value produce identical poll results. It is NOT a
// source of entropy and must never be registered outside tests.
type CounterSource struct {
	// counter is a byte that increments with each byte generated
	counter byte
}

// NewCounterSource creates a deterministic source with an initial counter.
func NewCounterSource(initialValue byte) *CounterSource {
	return &CounterSource{counter: initialValue}
}

// FastPoll fills the buffer with sequential counter values.
func (c *CounterSource) FastPoll(buf []byte) int {
	for i := range buf {
		buf[i] = c.counter
		c.counter++
	}
	return len(buf)
}

// SlowPoll behaves identically to FastPoll.
func (c *CounterSource) SlowPoll(buf []byte) int {
	return c.FastPoll(buf)
}

// Name returns the source identifier.
func (c *CounterSource) Name() string {
	return "counter"
}

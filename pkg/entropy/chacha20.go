package entropy

import (
	"crypto/cipher"
	crand "crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// ChaCha20Source produces mixing material from a ChaCha20 keystream keyed
// once from the OS generator.
//
// Like PRNGSource, this contributes no entropy beyond its initial key; it
// exists so that a transient OS generator fault after startup does not leave
// the extractor with nothing to fold. A slow poll rekeys the stream from the
// OS so long-lived generators do not run a single keystream forever.
type ChaCha20Source struct {
	stream cipher.Stream
}

// NewChaCha20Source creates a ChaCha20 source keyed from crypto/rand.
func NewChaCha20Source() *ChaCha20Source {
	s := &ChaCha20Source{}
	if err := s.rekey(); err != nil {
		panic(fmt.Sprintf("failed to key ChaCha20 source: %v", err))
	}
	return s
}

func (s *ChaCha20Source) rekey() error {
	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)

	if _, err := crand.Read(key); err != nil {
		return fmt.Errorf("chacha20 key generation failed: %w", err)
	}
	if _, err := crand.Read(nonce); err != nil {
		return fmt.Errorf("chacha20 nonce generation failed: %w", err)
	}

	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return fmt.Errorf("chacha20 cipher creation failed: %w", err)
	}
	s.stream = stream
	return nil
}

// FastPoll fills the buffer with keystream bytes.
func (s *ChaCha20Source) FastPoll(buf []byte) int {
	for i := range buf {
		buf[i] = 0
	}
	s.stream.XORKeyStream(buf, buf)
	return len(buf)
}

// SlowPoll rekeys the stream from the OS generator, then fills the buffer.
// If rekeying fails the existing keystream keeps serving.
func (s *ChaCha20Source) SlowPoll(buf []byte) int {
	_ = s.rekey()
	return s.FastPoll(buf)
}

// Name returns the source identifier.
func (s *ChaCha20Source) Name() string {
	return "chacha20"
}

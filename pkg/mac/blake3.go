package mac

import (
	"github.com/zeebo/blake3"
)

// blake3KeyContext is the domain-separation string for conditioning
// arbitrary-length key material down to the 32 bytes keyed BLAKE3 requires.
// Changing it changes every derived key, so it is fixed forever.
const blake3KeyContext = "hmacrng 2025-05-02 keyed blake3 mac"

// Blake3 is a MAC backed by keyed BLAKE3 with a 32-byte output.
type Blake3 struct {
	key [32]byte
	h   *blake3.Hasher
}

// NewBlake3 creates a keyed BLAKE3 MAC.
func NewBlake3() *Blake3 {
	b := &Blake3{}
	b.rekey()
	return b
}

// SetKey rekeys the MAC. Keyed BLAKE3 requires exactly 32 bytes of key, so
// any other length is conditioned through the BLAKE3 key-derivation mode
// under a fixed context string.
func (b *Blake3) SetKey(key []byte) {
	wipe(b.key[:])
	if len(key) == 32 {
		copy(b.key[:], key)
	} else {
		blake3.DeriveKey(blake3KeyContext, key, b.key[:])
	}
	b.rekey()
}

func (b *Blake3) rekey() {
	h, err := blake3.NewKeyed(b.key[:])
	if err != nil {
		// Unreachable: the key array is always exactly 32 bytes.
		panic("mac: blake3 rekey: " + err.Error())
	}
	b.h = h
}

// Update feeds more input into the MAC.
func (b *Blake3) Update(data []byte) {
	b.h.Write(data)
}

// Final computes the MAC output and resets the accumulation state while
// keeping the key.
func (b *Blake3) Final() []byte {
	out := b.h.Sum(nil)
	b.h.Reset()
	return out
}

// OutputLength returns the MAC output size in bytes.
func (b *Blake3) OutputLength() int {
	return 32
}

// Clear wipes the key and accumulation state.
func (b *Blake3) Clear() {
	wipe(b.key[:])
	b.rekey()
}

// Name returns a human-readable algorithm identifier.
func (b *Blake3) Name() string {
	return "BLAKE3"
}

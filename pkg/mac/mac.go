// Package mac defines the keyed pseudorandom function abstraction consumed by
// the hmacrng generator, along with implementations backed by HMAC, keyed
// BLAKE2b, and keyed BLAKE3.
//
// The generator uses two of these objects: an "extractor" that compresses
// gathered, possibly low-quality entropy into a pseudorandom key (PRK), and a
// "PRF" that expands the PRK into the output stream. Both roles need only the
// small capability set expressed by the MAC interface.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// MAC is a keyed pseudorandom function with incremental input.
//
// The contract mirrors what the generator core needs and nothing more:
//   - SetKey rekeys the function; any key length is accepted, and
//     implementations that require a fixed-size key condition the material
//     down internally (the way HMAC itself pads or hashes its key).
//   - Update may be called any number of times before Final.
//   - Final produces the fixed-length output and resets the accumulated
//     input, but not the key, so the next Update sequence reuses it.
//   - Clear destroys the key and accumulation state. The object remains
//     usable afterward and behaves as if keyed with all-zero material.
//
// Implementations are not safe for concurrent use; the owning generator is
// itself single-caller by contract.
type MAC interface {
	SetKey(key []byte)
	Update(data []byte)
	Final() []byte
	OutputLength() int
	Clear()
	Name() string
}

// HMAC is a MAC backed by crypto/hmac over a caller-chosen hash function.
type HMAC struct {
	newHash  func() hash.Hash
	hashName string
	size     int
	key      []byte
	mac      hash.Hash
}

// NewHMAC creates an HMAC instance over the given hash constructor. The
// hashName is used only for the human-readable Name composition.
func NewHMAC(newHash func() hash.Hash, hashName string) *HMAC {
	h := &HMAC{
		newHash:  newHash,
		hashName: hashName,
		size:     newHash().Size(),
	}
	h.mac = hmac.New(h.newHash, nil)
	return h
}

// NewHMACSHA256 creates an HMAC-SHA-256 MAC, the default algorithm for both
// generator roles.
func NewHMACSHA256() *HMAC {
	return NewHMAC(sha256.New, "SHA-256")
}

// NewHMACSHA512 creates an HMAC-SHA-512 MAC.
func NewHMACSHA512() *HMAC {
	return NewHMAC(sha512.New, "SHA-512")
}

// SetKey rekeys the HMAC, discarding any accumulated input. The previous key
// copy is wiped before being released.
func (h *HMAC) SetKey(key []byte) {
	wipe(h.key)
	h.key = append([]byte(nil), key...)
	h.mac = hmac.New(h.newHash, h.key)
}

// Update feeds more input into the MAC.
func (h *HMAC) Update(data []byte) {
	h.mac.Write(data)
}

// Final computes the MAC output and resets the accumulation state. The key
// is retained for subsequent Update/Final rounds.
func (h *HMAC) Final() []byte {
	out := h.mac.Sum(nil)
	h.mac.Reset()
	return out
}

// OutputLength returns the MAC output size in bytes.
func (h *HMAC) OutputLength() int {
	return h.size
}

// Clear wipes the key and accumulation state. The object stays usable and
// behaves as if keyed with zero-length material.
func (h *HMAC) Clear() {
	wipe(h.key)
	h.key = nil
	h.mac = hmac.New(h.newHash, nil)
}

// Name returns a human-readable algorithm identifier.
func (h *HMAC) Name() string {
	return "HMAC(" + h.hashName + ")"
}

// wipe zeroizes a byte slice in place.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Package digest provides an unambiguous streaming encoder over xxhash64.
//
// Every value is written with a fixed width or a length prefix, so distinct
// sequences of writes never produce the same byte stream.
package digest

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher accumulates a canonical encoding and hashes it.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// New returns an empty Hasher.
func New() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// Tag writes a single discriminator byte.
func (h *Hasher) Tag(tag byte) {
	h.buf[0] = tag
	_, _ = h.d.Write(h.buf[:1])
}

// Bool writes b as one byte.
func (h *Hasher) Bool(b bool) {
	if b {
		h.Tag(1)
	} else {
		h.Tag(0)
	}
}

// Uint64 writes v little-endian.
func (h *Hasher) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// Int64 writes v as its two's complement bits.
func (h *Hasher) Int64(v int64) {
	h.Uint64(uint64(v))
}

// Len writes a collection length.
func (h *Hasher) Len(n int) {
	h.Uint64(uint64(n))
}

// String writes s prefixed with its length.
func (h *Hasher) String(s string) {
	h.Len(len(s))
	_, _ = h.d.WriteString(s)
}

// Sum64 returns the hash of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

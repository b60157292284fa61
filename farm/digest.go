package farm

import (
	"encoding/binary"
	"hash"
)

// Size is the size of a Hash64 checksum in bytes.
const Size = 8

// Digest buffers written bytes and hashes them in one pass on Sum64.
// FarmHash is not incremental, so the sum of a stream is only defined over
// the whole stream.
type Digest struct {
	buf []byte
}

var _ hash.Hash64 = (*Digest)(nil)

// New returns an empty Digest.
func New() *Digest {
	return &Digest{}
}

// Write never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

func (d *Digest) Sum64() uint64 {
	return hash64(d.buf)
}

// Sum appends the big-endian checksum to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

// EncodeSum64 returns the big-endian checksum.
func (d *Digest) EncodeSum64() []byte {
	return d.Sum(make([]byte, 0, Size))
}

// Reset empties the buffer and keeps its capacity.
func (d *Digest) Reset() {
	d.buf = d.buf[:0]
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return 64 }

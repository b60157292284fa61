package farm

import (
	"encoding/binary"
	"math/bits"
)

// Some primes between 2^63 and 2^64 for various uses.
const (
	k0 uint64 = 0xc3a5c85c97cb3127
	k1 uint64 = 0xb492b66fbe98f273
	k2 uint64 = 0x9ae16a3b2f90404f
)

// uint128 is an accumulator pair threaded through the streaming tiers.
type uint128 struct {
	lo uint64
	hi uint64
}

func fetch64(s []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(s[i : i+8])
}

func fetch32(s []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(s[i : i+4])
}

// rotate64 rotates right by shift bits.
func rotate64(val uint64, shift int) uint64 {
	return bits.RotateLeft64(val, -shift)
}

func shiftMix(val uint64) uint64 {
	return val ^ (val >> 47)
}

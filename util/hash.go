package util

import (
	"errors"
	"unsafe"

	"farmkv/farm"

	"github.com/spaolacci/murmur3"
)

// ErrUnknownHashFunc is returned by LookupHashFunc for unregistered names.
var ErrUnknownHashFunc = errors.New("unknown hash func")

// HashFunc maps a key to a 64-bit value.
type HashFunc func(buf []byte) uint64

const (
	HashFarm    = "farm"
	HashMurmur3 = "murmur3"
	HashMem     = "mem"
)

var hashFuncs = map[string]HashFunc{
	HashFarm:    FarmHash,
	HashMurmur3: MurmurHash,
	HashMem:     MemHash,
}

// LookupHashFunc returns the hash func registered under name.
func LookupHashFunc(name string) (HashFunc, error) {
	fn, ok := hashFuncs[name]
	if !ok {
		return nil, ErrUnknownHashFunc
	}
	return fn, nil
}

// FarmHash is stable across processes and platforms.
func FarmHash(buf []byte) uint64 {
	return farm.Hash64(buf)
}

func MurmurHash(buf []byte) uint64 {
	return murmur3.Sum64(buf)
}

//go:linkname runtimeMemhash runtime.memhash
//go:noescape
func runtimeMemhash(p unsafe.Pointer, seed, s uintptr) uintptr

// MemHash uses the runtime's map hash. Its output is only meaningful
// within one process.
func MemHash(buf []byte) uint64 {
	return rthash(buf, 923)
}

func rthash(b []byte, seed uint64) uint64 {
	if len(b) == 0 {
		return seed
	}

	if unsafe.Sizeof(uintptr(0)) == 8 {
		return uint64(runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b))))
	}
	lo := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b)))
	hi := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed>>32), uintptr(len(b)))
	return uint64(hi)<<32 | uint64(lo)
}

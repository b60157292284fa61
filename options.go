package farmkv

import (
	"time"

	"farmkv/util"
)

type Options struct {
	// Shards is the number of independently locked index shards.
	Shards int
	// HashFunc names the function that routes keys to shards:
	// "farm", "murmur3" or "mem".
	HashFunc string
	// DefaultTTL applies to Set. Zero means keys never expire.
	DefaultTTL time.Duration
}

func DefaultOptions() Options {
	return Options{
		Shards:     16,
		HashFunc:   util.HashFarm,
		DefaultTTL: 0,
	}
}

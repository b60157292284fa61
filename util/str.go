package util

import (
	"errors"
	"strconv"
)

// ErrNotInteger is returned when an argument is not a base-10 integer.
var ErrNotInteger = errors.New("value is not an integer or out of range")

func StrToInt64(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}

func StrToUint(val string) (uint64, error) {
	return strconv.ParseUint(val, 10, 64)
}

// StrToInt parses a non-negative int argument.
func StrToInt(val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, ErrNotInteger
	}
	return n, nil
}

// Uint64ToHex renders a hash the way the cli prints it.
func Uint64ToHex(v uint64) string {
	s := strconv.FormatUint(v, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

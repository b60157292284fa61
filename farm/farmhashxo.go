package farm

// h32 mixes a 32-byte window with a multiplier and two seeds.
func h32(s []byte, mul, seed0, seed1 uint64) uint64 {
	slen := len(s)
	a := fetch64(s, 0) * k1
	b := fetch64(s, 8)
	c := fetch64(s, slen-8) * mul
	d := fetch64(s, slen-16) * k2
	u := rotate64(a+b, 43) + rotate64(c, 30) + d + seed0
	v := a + rotate64(b+k2, 18) + c + seed1
	a = shiftMix((u ^ v) * mul)
	b = shiftMix((v ^ a) * mul)
	return b
}

func xoHashLen33to64(s []byte) uint64 {
	const mul0 = k2 - 30
	slen := len(s)
	mul1 := k2 - 30 + 2*uint64(slen)
	h0 := h32(s[:32], mul0, 0, 0)
	h1 := h32(s[slen-32:], mul1, 0, 0)
	return (h1*mul1 + h0) * mul1
}

func xoHashLen65to96(s []byte) uint64 {
	const mul0 = k2 - 114
	slen := len(s)
	mul1 := k2 - 114 + 2*uint64(slen)
	h0 := h32(s[:32], mul0, 0, 0)
	h1 := h32(s[32:64], mul1, 0, 0)
	h2 := h32(s[slen-32:], mul1, h0, h1)
	return (h2*9 + (h0 >> 17) + (h1 >> 21)) * mul1
}

// hash64 dispatches on length. s is trusted to be the exact input.
func hash64(s []byte) uint64 {
	slen := len(s)
	switch {
	case slen <= 16:
		return hashLen0to16(s)
	case slen <= 32:
		return hashLen17to32(s)
	case slen <= 64:
		return xoHashLen33to64(s)
	case slen <= 96:
		return xoHashLen65to96(s)
	case slen <= 256:
		return naHash64(s)
	default:
		return uoHash64(s)
	}
}

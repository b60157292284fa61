package farm

func hashLen16Mul(u, v, mul uint64) uint64 {
	// Murmur-inspired hashing.
	a := (u ^ v) * mul
	a ^= a >> 47
	b := (v ^ a) * mul
	b ^= b >> 47
	b *= mul
	return b
}

func hashLen0to16(s []byte) uint64 {
	slen := uint64(len(s))
	if slen >= 8 {
		mul := k2 + slen*2
		a := fetch64(s, 0) + k2
		b := fetch64(s, int(slen-8))
		c := rotate64(b, 37)*mul + a
		d := (rotate64(a, 25) + b) * mul
		return hashLen16Mul(c, d, mul)
	}
	if slen >= 4 {
		mul := k2 + slen*2
		a := fetch32(s, 0)
		return hashLen16Mul(slen+(uint64(a)<<3), uint64(fetch32(s, int(slen-4))), mul)
	}
	if slen > 0 {
		a := s[0]
		b := s[slen>>1]
		c := s[slen-1]
		y := uint32(a) + (uint32(b) << 8)
		z := uint32(slen) + (uint32(c) << 2)
		return shiftMix(uint64(y)*k2^uint64(z)*k0) * k2
	}
	return k2
}

func hashLen17to32(s []byte) uint64 {
	slen := len(s)
	mul := k2 + uint64(slen)*2
	a := fetch64(s, 0) * k1
	b := fetch64(s, 8)
	c := fetch64(s, slen-8) * mul
	d := fetch64(s, slen-16) * k2
	return hashLen16Mul(rotate64(a+b, 43)+rotate64(c, 30)+d, a+rotate64(b+k2, 18)+c, mul)
}

// weakHashLen32WithSeedsWords returns a 16-byte hash for 48 bytes. Quick and
// dirty. Callers do best to use "random-looking" values for a and b.
func weakHashLen32WithSeedsWords(w, x, y, z, a, b uint64) uint128 {
	a += w
	b = rotate64(b+a+z, 21)
	c := a
	a += x
	a += y
	b += rotate64(a, 44)
	return uint128{a + z, b + c}
}

// weakHashLen32WithSeeds hashes s[0] ... s[31], a and b.
func weakHashLen32WithSeeds(s []byte, a, b uint64) uint128 {
	return weakHashLen32WithSeedsWords(fetch64(s, 0),
		fetch64(s, 8),
		fetch64(s, 16),
		fetch64(s, 24),
		a,
		b)
}

// naHash64 handles inputs longer than 64 bytes.
func naHash64(s []byte) uint64 {
	seed := uint64(81)
	slen := len(s)

	// Internal state consists of 56 bytes: v, w, x, y, and z.
	var v, w uint128
	x := seed*k2 + fetch64(s, 0)
	y := seed*k1 + 113
	z := shiftMix(y*k2+113) * k2

	// Set end so that after the loop we have 1 to 64 bytes left to process.
	end := ((slen - 1) / 64) * 64
	last64 := end + ((slen - 1) & 63) - 63

	for i := 0; i < end; i += 64 {
		blk := s[i : i+64]
		x = rotate64(x+y+v.lo+fetch64(blk, 8), 37) * k1
		y = rotate64(y+v.hi+fetch64(blk, 48), 42) * k1
		x ^= w.hi
		y += v.lo + fetch64(blk, 40)
		z = rotate64(z+w.lo, 33) * k1
		v = weakHashLen32WithSeeds(blk, v.hi*k1, x+w.lo)
		w = weakHashLen32WithSeeds(blk[32:], z+w.hi, y+fetch64(blk, 16))
		z, x = x, z
	}

	mul := k1 + ((z & 0xff) << 1)
	// The last 64 bytes may overlap the final block.
	blk := s[last64:]
	w.lo += uint64(slen-1) & 63
	v.lo += w.lo
	w.lo += v.lo
	x = rotate64(x+y+v.lo+fetch64(blk, 8), 37) * mul
	y = rotate64(y+v.hi+fetch64(blk, 48), 42) * mul
	x ^= w.hi * 9
	y += v.lo*9 + fetch64(blk, 40)
	z = rotate64(z+w.lo, 33) * mul
	v = weakHashLen32WithSeeds(blk, v.hi*mul, x+w.lo)
	w = weakHashLen32WithSeeds(blk[32:], z+w.hi, y+fetch64(blk, 16))
	z, x = x, z
	return hashLen16Mul(hashLen16Mul(v.lo, w.lo, mul)+shiftMix(y)*k0+z,
		hashLen16Mul(v.hi, w.hi, mul)+x,
		mul)
}

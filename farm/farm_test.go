package farm

import (
	"math/bits"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var goldenHash64 = []struct {
	want uint64
	in   string
}{
	{0x9ae16a3b2f90404f, ""},
	{0xb3454265b6df75e3, "a"},
	{0xaa8d6e5242ada51e, "ab"},
	{0x24a5b3a074e7f369, "abc"},
	{0x1a5502de4a1f8101, "abcd"},
	{0xc22f4663e54e04d4, "abcde"},
	{0xc329379e6a03c2cd, "abcdef"},
	{0x3c40c92b1ccb7355, "abcdefg"},
	{0xfee9d22990c82909, "abcdefgh"},
	{0x332c8ed4dae5ba42, "abcdefghi"},
	{0xad052244b781c4eb, "0123456789"},
	{0x3ef4c03514208c77, "0123456789 "},
	{0x496841e83a33cc91, "0123456789-0"},
	{0xd81bcb9f3679ac0c, "0123456789~01"},
	{0x5da5a6a117c606f6, "0123456789#012"},
	{0x5361eae17c1ff6bc, "0123456789@0123"},
	{0x4283d4ef43627f64, "0123456789'01234"},
	{0x46a7416ed4861e3b, "0123456789=012345"},
	{0xa4abb4e0da2c594c, "0123456789+0123456"},
	{0xcf1c7d3ad54f9215, "0123456789*01234567"},
	{0x07adf50b2ac764fc, "0123456789&012345678"},
	{0xdebcba8e6f3eabd1, "0123456789^0123456789"},
	{0x4dbd128af51d77e8, "0123456789%0123456789£"},
	{0xd78d5f852d522e6a, "0123456789$0123456789!0"},
	{0x80d73b843ba57db8, "size:  a.out:  bad magic"},
	{0x8eb3808d1ccfc779, "Nepal premier won't resign."},
	{0xb944f8a16261e414, "C is as portable as Stonehedge!!"},
	{0x2d072041b535155d, "Discard medicine more than two years old."},
	{0x361b79df08615cd6, "I wouldn't marry him with a ten foot pole."},
	{0x1f232f3375914f0a, "If the enemy is within range, then so are you."},
	{0x1da6c1dfec23a597, "The major problem is with sendmail.  -Mark Horton"},
	{0xa29944470950e8e4, "How can you write a big system without C++?  -Paul Glick"},
	{0x9f9e3cdeb570f926, "He who has a shady past knows that nice guys finish last."},
	{0xdcfb73d4de1111c6, "Free! Free!/A trip/to Mars/for 900/empty jars/Burma Shave"},
	{0x3df4b8e109629602, "His money is twice tainted: 'taint yours and 'taint mine."},
	{0xd71bdfedb6182a5d, "The days of the digital watch are numbered.  -Tom Stoppard"},
	{0x8452fbb0c8f98c4f, "For every action there is an equal and opposite government program."},
	{0x98d2fbd5131a5860, "You remind me of a TV show, but that's all right: I watch it anyway."},
	{0x796229f1faacec7e, "It's well we cannot hear the screams/That we create in others' dreams."},
	{0xb8e2918a4398348d, "Give me a rock, paper and scissors and I will move the world.  CCFestoon"},
	{0x889b024bab17bf54, "It's a tiny change to the code and not completely disgusting. - Bob Manchek"},
	{0x7fee06e367562d44, "There is no reason for any individual to have a computer in their home. -Ken Olsen, 1977"},
	{0x4c349a4ff7ac0c89, "Even if I could be Shakespeare, I think I should still choose to be Faraday. - A. Huxley"},
	{0x098eff6958c5e91a, "The fugacity of a constituent in a mixture of gases at a given temperature is proportional to its mole fraction.  Lewis-Randall Rule"},
	{0xed25cfc61b15bddd, "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."},
}

// dataHash64 holds hashes of setupData(8192)[:n] and [7:7+n].
var dataHash64 = []struct {
	n       int
	want    uint64
	wantAt7 uint64
}{
	{0, 0x9ae16a3b2f90404f, 0x9ae16a3b2f90404f},
	{1, 0xf592025a96e41782, 0xeadfbecfd0f218b8},
	{2, 0x3dd1fc3f768cb689, 0xee713d290adefc91},
	{3, 0x87cbba12f9cfba24, 0x084c994ded3dbce5},
	{4, 0x0bbd10179d5f1bb5, 0x30ee76fc38269d56},
	{5, 0xac4cfd70d68fdce0, 0x384a64a20013c56d},
	{7, 0x5d913e0b64412450, 0x85d3c1d9690257ad},
	{8, 0xec8e16f499899345, 0x5b0549935081736c},
	{9, 0xbdfb4a93277911f1, 0x56b50ffa4fd24873},
	{15, 0x1069c03a33af7ab1, 0x54a376a766e8ac5b},
	{16, 0xb16cbeb13d01a441, 0x2bc8df4a9b6e67b4},
	{17, 0xc5aa7ea87bfee0c4, 0xe7230b7bdf9499c7},
	{18, 0x5f1b06186735a921, 0xaa2e9b0f7eaab871},
	{31, 0x06e65024d181ada0, 0x6b8193d7b585f579},
	{32, 0xdfd34f271d38b837, 0x6e4883105299dd0c},
	{33, 0xc57158fec5f502be, 0xb73a33e587bd4ca9},
	{34, 0xbe3776c71f0cef76, 0x2d8c872246877a5c},
	{63, 0xbd03bd4a34d5db9a, 0x9572f47c82e1d53b},
	{64, 0x8c07a3413e2f8188, 0x377fe1e40d569963},
	{65, 0xff36587638d3482b, 0x3c9fa9d0c50b054b},
	{66, 0x1bee7670b6465bc2, 0x7f45fc5ed3becff9},
	{95, 0xd54c9d89be6a3afc, 0xf5b3a68988e0365c},
	{96, 0x4fba6bc683a18607, 0x3870e66c300c884c},
	{97, 0x5473e4a437040d18, 0x63304d44318ed943},
	{98, 0x36b4021a8ccc0c84, 0x69ee05faa860ea94},
	{128, 0x2dcab320149cd602, 0x23485d9b32170d76},
	{255, 0x157e1e55bc7b42f1, 0x90768412d50dc4f4},
	{256, 0xad3a9ea5a6d95b31, 0xb06cb8764fabadb9},
	{257, 0xb53a97f5206beb4c, 0xb2e4563ac76702b5},
	{258, 0x0a3b4ceee28c9334, 0xb67f32b0760ee756},
	{320, 0x66b183460fd01bd4, 0x90daf41a7a8e3b24},
	{511, 0xca93b5d7397bec13, 0x7223b77f6c59a3fa},
	{512, 0x3973a6af406ed962, 0xdaa91b71467d0ca6},
	{1000, 0xad861b05cc39bcfc, 0xf37ac8cb9655227f},
	{1024, 0x5c3a6fb66f09e571, 0x7f8f78069b915b53},
	{4096, 0x36d68b70d9f0f9ee, 0x218a0bb4065b8168},
}

// setupData fills a buffer with the pseudo-random bytes the reference
// farmhash self-test uses.
func setupData(n int) []byte {
	a, b := uint64(9), uint64(777)
	data := make([]byte, n)
	for i := 0; i < n; i++ {
		a += b
		b += a
		a = (a ^ (a >> 41)) * k0
		b = (b^(b>>41))*k0 + uint64(i)
		data[i] = byte(b >> 37)
	}
	return data
}

func TestHash64_Golden(t *testing.T) {
	for _, tt := range goldenHash64 {
		assert.Equal(t, tt.want, Hash64([]byte(tt.in)), "len=%d %q", len(tt.in), tt.in)
		assert.Equal(t, tt.want, Hash64String(tt.in), "len=%d %q", len(tt.in), tt.in)
	}
}

func TestHash64_Empty(t *testing.T) {
	assert.Equal(t, uint64(0x9ae16a3b2f90404f), Hash64(nil))
	assert.Equal(t, uint64(0x9ae16a3b2f90404f), Hash64([]byte{}))
	assert.Equal(t, uint64(0x9ae16a3b2f90404f), Hash64String(""))
}

func TestHash64_Data(t *testing.T) {
	data := setupData(1 << 13)
	for _, tt := range dataHash64 {
		assert.Equal(t, tt.want, Hash64(data[:tt.n]), "len=%d", tt.n)

		got, err := Hash64At(data, 7, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.wantAt7, got, "offset=7 len=%d", tt.n)
	}
}

func TestHash64_Dispatch(t *testing.T) {
	data := setupData(1024)
	tests := []struct {
		name string
		fn   func([]byte) uint64
		lens []int
	}{
		{"hashLen0to16", hashLen0to16, []int{0, 1, 3, 4, 7, 8, 16}},
		{"hashLen17to32", hashLen17to32, []int{17, 24, 32}},
		{"xoHashLen33to64", xoHashLen33to64, []int{33, 48, 64}},
		{"xoHashLen65to96", xoHashLen65to96, []int{65, 80, 96}},
		{"naHash64", naHash64, []int{97, 128, 200, 256}},
		{"uoHash64", uoHash64, []int{257, 320, 1000, 1024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range tt.lens {
				assert.Equal(t, tt.fn(data[:n]), Hash64(data[:n]), "len=%d", n)
			}
		})
	}
}

func TestNaHash64(t *testing.T) {
	// The seeded start state must wrap modulo 2^64 like every other product.
	data := setupData(256)
	tests := []struct {
		n    int
		want uint64
	}{
		{97, 0x5473e4a437040d18},
		{98, 0x36b4021a8ccc0c84},
		{128, 0x2dcab320149cd602},
		{255, 0x157e1e55bc7b42f1},
		{256, 0xad3a9ea5a6d95b31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, naHash64(data[:tt.n]), "len=%d", tt.n)
	}
}

func TestHash64_TiersDiffer(t *testing.T) {
	// Both streaming tiers accept any input over 64 bytes; the dispatcher
	// must not swap them at the 256 byte boundary.
	data := setupData(512)
	for _, n := range []int{97, 256, 257, 512} {
		assert.NotEqual(t, naHash64(data[:n]), uoHash64(data[:n]), "len=%d", n)
	}
	assert.Equal(t, naHash64(data[:256]), Hash64(data[:256]))
	assert.Equal(t, uoHash64(data[:257]), Hash64(data[:257]))
}

func TestHash64At_OutOfRange(t *testing.T) {
	buf := make([]byte, 32)
	tests := []struct {
		name           string
		offset, length int
	}{
		{"negative offset", -1, 4},
		{"negative length", 0, -1},
		{"offset past end", 33, 0},
		{"length past end", 8, 25},
		{"overflowing length", 1, int(^uint(0) >> 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Hash64At(buf, tt.offset, tt.length)
			assert.ErrorIs(t, err, ErrOutOfRange)
			assert.Zero(t, h)
		})
	}

	h, err := Hash64At(buf, 32, 0)
	require.NoError(t, err)
	assert.Equal(t, k2, h)
}

func TestHash64At_IgnoresTrailingBytes(t *testing.T) {
	data := setupData(600)
	other := append([]byte(nil), data...)
	for i := range other {
		other[i] ^= 0xff
	}
	for n := 0; n <= 300; n++ {
		buf := append(append([]byte(nil), data[:n]...), other[n:]...)
		want := Hash64(data[:n])
		got, err := Hash64At(buf, 0, n)
		require.NoError(t, err)
		if !assert.Equal(t, want, got, "len=%d", n) {
			return
		}
		assert.Equal(t, want, Hash64(buf[:n]), "len=%d", n)
	}
}

func TestHash64_Deterministic(t *testing.T) {
	data := setupData(2048)
	for n := 0; n <= len(data); n += 31 {
		first := Hash64(data[:n])
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Hash64(append([]byte(nil), data[:n]...)))
		}
	}
}

func TestHash64_Avalanche(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	var flips, changed int
	for _, n := range []int{32, 48, 80, 128, 300} {
		for sample := 0; sample < 8; sample++ {
			buf := make([]byte, n)
			rnd.Read(buf)
			base := Hash64(buf)
			for bit := 0; bit < n*8; bit++ {
				buf[bit/8] ^= 1 << (bit % 8)
				diff := bits.OnesCount64(base ^ Hash64(buf))
				buf[bit/8] ^= 1 << (bit % 8)
				if !assert.NotZero(t, diff, "len=%d bit=%d", n, bit) {
					return
				}
				flips++
				changed += diff
			}
		}
	}
	mean := float64(changed) / float64(flips)
	assert.InDelta(t, 32.0, mean, 2.0)
}

func TestHash64_Concurrent(t *testing.T) {
	data := setupData(4096)
	want := make([]uint64, len(dataHash64))
	for i, tt := range dataHash64 {
		want[i] = Hash64(data[:tt.n])
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for round := 0; round < 50; round++ {
				for i, tt := range dataHash64 {
					if got := Hash64(data[:tt.n]); got != want[i] {
						t.Errorf("len=%d: got %#x, want %#x", tt.n, got, want[i])
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkHash64(b *testing.B) {
	data := setupData(1 << 12)
	for _, n := range []int{8, 16, 32, 64, 96, 256, 1024, 4096} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			s := data[:n]
			b.SetBytes(int64(n))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Hash64(s)
			}
		})
	}
}

// Package rng provides the soup's seeded pseudo-random source. Every soup
// owns exactly one Rng; no sampling in the reactor goes through any other
// random source, which is what makes a soup's trajectory a deterministic
// function of its seed and call sequence.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/chacha20"
)

// Seed is the 32-byte key that determines a Rng's entire output stream,
// matching the width of the original implementation's ChaCha8Rng seed.
type Seed [32]byte

// Rng is a ChaCha20-keystream-backed pseudo-random generator. It is not
// safe for concurrent use; each Soup owns its Rng exclusively.
type Rng struct {
	seed    Seed
	cipher  *chacha20.Cipher
	buf     [256]byte
	pos     int
	counter uint32 // chacha20 block counter consumed so far
}

// New constructs a Rng from a 32-byte seed. A zero nonce is used throughout:
// the seed itself is the only source of entropy or reproducibility the
// reactor needs, and a soup never reuses a Rng across re-seeds.
func New(seed Seed) *Rng {
	cipher := newCipher(seed)
	return &Rng{seed: seed, cipher: cipher, pos: 256}
}

func newCipher(seed Seed) *chacha20.Cipher {
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// Only possible if the key/nonce sizes above are wrong, which is a
		// programming error, not a runtime condition callers can recover
		// from.
		panic(fmt.Sprintf("rng: invalid chacha20 parameters: %v", err))
	}
	return cipher
}

// Clone returns an independent Rng that will produce exactly the same
// future output as r, without disturbing r itself. A Tape relies on this to
// snapshot a soup's random source alongside its expressions: replaying the
// same seed and call sequence against either copy yields bitwise-identical
// trajectories.
func (r *Rng) Clone() *Rng {
	cipher := newCipher(r.seed)
	cipher.SetCounter(r.counter)
	return &Rng{seed: r.seed, cipher: cipher, buf: r.buf, pos: r.pos, counter: r.counter}
}

// RandomSeed draws a Seed from the operating system's CSPRNG, for runs that
// do not pin a reactor or generator seed.
func RandomSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return Seed{}, fmt.Errorf("rng: reading OS random seed: %w", err)
	}
	return s, nil
}

func (r *Rng) fill() {
	var zero [256]byte
	r.cipher.XORKeyStream(r.buf[:], zero[:])
	r.pos = 0
	r.counter += 4 // 256 bytes == 4 chacha20 blocks
}

// Uint64 returns the next 64 bits of the keystream.
func (r *Rng) Uint64() uint64 {
	if r.pos+8 > len(r.buf) {
		r.fill()
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v
}

// IntN returns a uniformly distributed integer in [0, n). It panics if n
// is not positive, matching the standard library's math/rand/v2 contract.
func (r *Rng) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	// Lemire's rejection-free-in-expectation bounded integer, avoiding
	// modulo bias without needing a rejection loop in the common case.
	bound := uint64(n)
	hi, lo := bits.Mul64(r.Uint64(), bound)
	if lo < bound {
		threshold := -bound % bound
		for lo < threshold {
			hi, lo = bits.Mul64(r.Uint64(), bound)
		}
	}
	return int(hi)
}

// Float64 returns a uniformly distributed value in [0, 1), using the top
// 53 bits of the keystream so every representable float64 mantissa value
// is reachable, matching the standard library's float-from-uint64 recipe.
func (r *Rng) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Shuffle randomizes the order of a slice of length n in place using the
// Fisher-Yates algorithm, mirroring rand.Shuffle's contract.
func (r *Rng) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}

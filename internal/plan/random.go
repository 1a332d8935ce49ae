package plan

import "math/bits"

// newGenerator returns a xoshiro128** generator producing floats in [0, 1).
// The sequence is a pure function of the seed; the three odd constants keep
// the state from being all zero when seed == 0.
func newGenerator(seed uint32) func() float64 {
	s0 := seed
	s1 := seed ^ 0x9e3779b9
	s2 := seed ^ 0x85ebca6b
	s3 := seed ^ 0xc2b2ae35

	return func() float64 {
		result := bits.RotateLeft32(s1*5, 7) * 9

		t := s1 << 9
		s2 ^= s0
		s3 ^= s1
		s1 ^= s2
		s0 ^= s3
		s2 ^= t
		s3 = bits.RotateLeft32(s3, 11)

		return float64(result) / 4294967296.0
	}
}

// hashSeed maps an arbitrary string onto 32-bit seed space with a
// multiply-xor accumulation. Every independent random decision derives its
// seed from a distinct string (plan id + slot/store + purpose tag + retry
// offset), so retries are deterministic but land on different candidates.
func hashSeed(s string) uint32 {
	var hash uint32
	for i := 0; i < len(s); i++ {
		hash = (hash ^ uint32(s[i])) * 0x5bd1e995
		hash ^= hash >> 15
	}
	return hash
}

// shuffle reorders the slice in place with Fisher-Yates driven by the seeded
// generator.
func shuffle[T any](items []T, seed uint32) {
	rng := newGenerator(seed)
	for m := len(items); m > 0; {
		i := int(rng() * float64(m))
		m--
		items[m], items[i] = items[i], items[m]
	}
}

// seededPick returns one element deterministically. A few initial values are
// discarded so that nearby seeds do not land on the same index.
func seededPick[T any](items []T, seed uint32) T {
	rng := newGenerator(seed)
	for i := 0; i < 5; i++ {
		rng()
	}
	return items[int(rng()*float64(len(items)))]
}

package plan

import "testing"

func TestGeneratorIsDeterministic(t *testing.T) {
	a := newGenerator(12345)
	b := newGenerator(12345)

	for i := 0; i < 100; i++ {
		va, vb := a(), b()
		if va != vb {
			t.Fatalf("call %d: generators diverged: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("call %d: value %v outside [0,1)", i, va)
		}
	}
}

func TestGeneratorZeroSeedIsNotDegenerate(t *testing.T) {
	rng := newGenerator(0)

	first := rng()
	allSame := true
	for i := 0; i < 20; i++ {
		if rng() != first {
			allSame = false
			break
		}
	}
	if allSame {
		t.Fatal("seed 0 produced a constant sequence")
	}
}

func TestGeneratorDifferentSeedsDiverge(t *testing.T) {
	a := newGenerator(1)
	b := newGenerator(2)

	same := 0
	for i := 0; i < 50; i++ {
		if a() == b() {
			same++
		}
	}
	if same == 50 {
		t.Fatal("seeds 1 and 2 produced identical sequences")
	}
}

func TestHashSeed(t *testing.T) {
	if hashSeed("abc123") != hashSeed("abc123") {
		t.Fatal("hashSeed is not deterministic")
	}
	if hashSeed("") != hashSeed("") {
		t.Fatal("hashSeed of empty string is not stable")
	}

	// Order sensitivity: permutations must not collide.
	if hashSeed("abc") == hashSeed("cba") {
		t.Fatal("hashSeed ignored character order")
	}

	// The seed strings used by the selector differ only in a trailing
	// offset; those must land on different seeds.
	if hashSeed("plan0meal0") == hashSeed("plan0meal1") {
		t.Fatal("retry offsets hashed to the same seed")
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	base := []int{1, 2, 3, 4, 5, 6, 7, 8}

	a := append([]int(nil), base...)
	b := append([]int(nil), base...)
	shuffle(a, 42)
	shuffle(b, 42)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different orders: %v vs %v", a, b)
		}
	}

	seen := map[int]bool{}
	for _, v := range a {
		seen[v] = true
	}
	if len(seen) != len(base) {
		t.Fatalf("shuffle lost elements: %v", a)
	}
}

func TestSeededPick(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	first := seededPick(items, 7)
	if seededPick(items, 7) != first {
		t.Fatal("same seed picked different elements")
	}

	picks := map[string]bool{}
	for seed := uint32(0); seed < 50; seed++ {
		picks[seededPick(items, seed)] = true
	}
	if len(picks) < 2 {
		t.Fatalf("50 seeds all picked %v", picks)
	}
}

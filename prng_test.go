package voronoi

import "testing"

func TestPRNGDeterministic(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d: %v != %v for same seed", i, va, vb)
		}
	}
}

func TestPRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewPRNG(1)
	b := NewPRNG(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical streams")
	}
}

func TestPRNGNextInUnitRange(t *testing.T) {
	p := NewPRNG(7)
	for i := 0; i < 10000; i++ {
		v := p.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() = %v, want [0,1)", v)
		}
	}
}

func TestPRNGMulberry32KnownSequence(t *testing.T) {
	// First five outputs of Mulberry32 for seed=1, computed by the exact
	// reference bit operations this implementation mirrors.
	p := NewPRNG(1)
	state := uint32(1)
	ref := func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t ^ (t >> 7)) * (t | 61)
		t ^= t >> 14
		return float64(t) / 4294967296.0
	}
	for i := 0; i < 5; i++ {
		want := ref()
		got := p.Next()
		if got != want {
			t.Fatalf("draw %d: got %v, want %v", i, got, want)
		}
	}
}

func TestPRNGIntRangeBounds(t *testing.T) {
	p := NewPRNG(99)
	for i := 0; i < 1000; i++ {
		v := p.IntRange(5)
		if v < 0 || v >= 5 {
			t.Fatalf("IntRange(5) = %d, out of bounds", v)
		}
	}
	if v := p.IntRange(0); v != 0 {
		t.Fatalf("IntRange(0) = %d, want 0", v)
	}
}

func TestSubSeedIndependentFromBase(t *testing.T) {
	base := NewPRNG(5)
	sub0 := base.Sub(0)
	sub1 := base.Sub(1)
	if sub0.state == sub1.state {
		t.Fatal("Sub(0) and Sub(1) collided")
	}
	if sub0.state == base.state {
		t.Fatal("Sub(0) reproduced the base seed")
	}
}

func TestSubSeedReproducible(t *testing.T) {
	a := NewPRNG(123).Sub(7)
	b := NewPRNG(123).Sub(7)
	for i := 0; i < 20; i++ {
		if a.Next() != b.Next() {
			t.Fatal("Sub(7) from two freshly-seeded PRNGs diverged")
		}
	}
}

func TestGaussianFinite(t *testing.T) {
	p := NewPRNG(3)
	for i := 0; i < 1000; i++ {
		v := p.Gaussian()
		if v != v { // NaN check
			t.Fatal("Gaussian produced NaN")
		}
	}
}

package params

import (
	"math/rand/v2"
	"testing"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestChooseSizeBound(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 1000} {
		for _, d := range []int{1, 2, 3} {
			p := Choose(newRNG(), n, d)
			if p.M < uint64(n) {
				t.Fatalf("n=%d d=%d: m=%d < n", n, d, p.M)
			}
			if p.R == 0 {
				t.Fatalf("n=%d d=%d: r must be positive", n, d)
			}
		}
	}
}

func TestChooseDistinctMultipliers(t *testing.T) {
	rng := newRNG()
	for i := 0; i < 100; i++ {
		p := Choose(rng, 50, 2)
		if p.M0 == p.M1 {
			t.Fatalf("M0 == M1 == %d", p.M0)
		}
		if !inPool(p.M0) || !inPool(p.M1) || !inPool(p.M2) {
			t.Fatalf("multiplier drawn outside the prime pool: %+v", p)
		}
	}
}

func TestGrowIsMonotone(t *testing.T) {
	rng := newRNG()
	initial := Choose(rng, 20, 2)
	p := initial
	for i := 0; i < 5; i++ {
		next := p.Grow(rng)
		if next.RBar < p.RBar {
			t.Fatalf("r-bar shrank on retry: %d -> %d", p.RBar, next.RBar)
		}
		if next.RBar != p.RBar+uint64(p.Dim) {
			t.Fatalf("r-bar grew by %d, want %d", next.RBar-p.RBar, p.Dim)
		}
		if next.M0 != initial.M0 || next.M1 != initial.M1 || next.M2 != initial.M2 {
			t.Fatalf("Grow must not redraw multipliers: got M0=%d M1=%d M2=%d, want M0=%d M1=%d M2=%d",
				next.M0, next.M1, next.M2, initial.M0, initial.M1, initial.M2)
		}
		if next.MBar != initial.MBar || next.M != initial.M {
			t.Fatalf("Grow must not change m-bar/m: got MBar=%d M=%d, want MBar=%d M=%d",
				next.MBar, next.M, initial.MBar, initial.M)
		}
		p = next
	}
}

func TestBadRatio(t *testing.T) {
	p := Params{MBar: 5, RBar: 4, R: 16}
	if !p.BadRatio() {
		t.Fatalf("5 mod 4 == 1 should be flagged as a bad ratio")
	}
	p2 := Params{MBar: 15, RBar: 4, R: 4}
	if !p2.BadRatio() {
		t.Fatalf("15 mod 4 == 3 == r-1 should be flagged as a bad ratio")
	}
	p3 := Params{MBar: 6, RBar: 4, R: 16}
	if p3.BadRatio() {
		t.Fatalf("6 mod 4 == 2 should not be flagged")
	}
}

func inPool(m uint32) bool {
	for _, p := range primePool {
		if p == m {
			return true
		}
	}
	return false
}

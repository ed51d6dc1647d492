package lattice

import "testing"

func TestToIndexFromIndexRoundTrip(t *testing.T) {
	const base = 16
	const dim = 3
	for i := uint64(0); i < base*base*base; i++ {
		p := FromIndex(i, base, dim)
		got := ToIndex(p, base, Unbounded)
		if got != i {
			t.Fatalf("round trip broke at i=%d: FromIndex->ToIndex gave %d", i, got)
		}
	}
}

func TestToIndexReducesModulo(t *testing.T) {
	p := Point{5, 3}
	full := ToIndex(p, 16, Unbounded)
	reduced := ToIndex(p, 16, 7)
	if reduced != full%7 {
		t.Fatalf("ToIndex(mod=7) = %d, want %d", reduced, full%7)
	}
}

func TestAddWraps(t *testing.T) {
	a := Point{^uint32(0), 1}
	b := Point{1, 1}
	got := Add(a, b)
	if got[0] != 0 || got[1] != 2 {
		t.Fatalf("Add did not wrap: got %v", got)
	}
}

func TestScalarMul(t *testing.T) {
	p := Point{2, 3, 4}
	got := ScalarMul(5, p)
	want := Point{10, 15, 20}
	if !Equal(got, want) {
		t.Fatalf("ScalarMul(5, %v) = %v, want %v", p, got, want)
	}
}

func TestIncreasingPow(t *testing.T) {
	got := IncreasingPow(3, 4)
	want := Point{3, 9, 27, 81}
	if !Equal(got, want) {
		t.Fatalf("IncreasingPow(3, 4) = %v, want %v", got, want)
	}
}

func TestIncreasingPowZeroCollapses(t *testing.T) {
	got := IncreasingPow(0, 3)
	for _, c := range got {
		if c != 0 {
			t.Fatalf("IncreasingPow(0, _) should be all zero, got %v", got)
		}
	}
}

// Boundary case: domain_size^dim slightly exceeds the uint32 range while
// every individual axis still fits in one (65537^2 = 4295098369, just past
// 2^32 = 4294967296). ToIndex/FromIndex must flatten and recover such
// points using uint64 arithmetic throughout, never truncating through a
// uint32 intermediate.
func TestToIndexHandlesUint32RangeOverflowInBase(t *testing.T) {
	const base = 65537
	const dim = 2
	p := Point{base - 1, base - 1}

	full := ToIndex(p, base, Unbounded)
	want := uint64(base-1) + uint64(base-1)*uint64(base)
	if full != want {
		t.Fatalf("ToIndex near the uint32 boundary = %d, want %d", full, want)
	}
	if full <= uint64(^uint32(0)) {
		t.Fatalf("test setup invalid: %d does not exceed the uint32 range", full)
	}

	back := FromIndex(full, base, dim)
	if !Equal(back, p) {
		t.Fatalf("FromIndex(ToIndex(p)) = %v, want %v", back, p)
	}
}

func TestDot(t *testing.T) {
	a := Point{2, 3}
	b := Point{4, 5}
	if got := Dot(a, b); got != 2*4+3*5 {
		t.Fatalf("Dot = %d, want %d", got, 2*4+3*5)
	}
}

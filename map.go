package pshash

import (
	"unsafe"

	psherrors "github.com/arkgrid/pshash/errors"
	"github.com/arkgrid/pshash/internal/lattice"
	"github.com/arkgrid/pshash/internal/params"
)

// Point is a fixed-dimension, componentwise-nonnegative lattice coordinate.
// Its dimension is fixed once a Map is built from it.
type Point = lattice.Point

// Datum is one input point and its payload.
type Datum[T any] struct {
	Location Point
	Contents T
}

// entry is the published, per-slot record of Map's value table: the
// discriminator k, the witness hash hk = H2(location, k), and the payload.
// The resident's location is intentionally not retained past construction —
// membership is decided entirely by the witness hash.
type entry[T any] struct {
	k        uint32
	hk       uint32
	contents T
}

// Map is an immutable perfect spatial hash: a compact, collision-free
// associative map from a sparse set of d-dimensional lattice points to
// payloads of type T. It is built once by Build and is safe for concurrent
// read-only queries from any number of goroutines thereafter.
type Map[T any] struct {
	dim        int
	prm        params.Params
	domainSize Point
	phi        []Point
	slots      []entry[T]
	occupied   []bool
}

// Get looks up p and returns its payload. It fails with psherrors.ErrAbsent
// when p was not one of the points the map was built from. Get is a pure
// function of the frozen map and is safe to call from any number of
// goroutines concurrently.
func (m *Map[T]) Get(p Point) (T, error) {
	var zero T
	if len(p) != m.dim {
		return zero, psherrors.ErrDimensionMismatch
	}
	slot := slotOf(p, m.prm, m.phi)
	if !m.occupied[slot] {
		return zero, psherrors.ErrAbsent
	}
	e := m.slots[slot]
	if h2(p, e.k, m.prm.M2) != e.hk {
		return zero, psherrors.ErrAbsent
	}
	return e.contents, nil
}

// MemorySize returns the map's in-memory footprint in bytes: the value
// table, the offset table, the occupancy bitmap, and the fixed parameter
// scalars. It is an observable metric callers can use to compare
// compactness across builds (see boundary case 6: it is non-decreasing in
// the number of input points for a fixed domain).
func (m *Map[T]) MemorySize() uintptr {
	var e entry[T]
	var axis uint32
	var b bool

	hSize := uintptr(len(m.slots)) * unsafe.Sizeof(e)
	phiSize := uintptr(len(m.phi)) * uintptr(m.dim) * unsafe.Sizeof(axis)
	occSize := uintptr(len(m.occupied)) * unsafe.Sizeof(b)
	fixed := unsafe.Sizeof(m.prm) + unsafe.Sizeof(m.dim) + uintptr(m.dim)*unsafe.Sizeof(axis)

	return hSize + phiSize + occSize + fixed
}

// Dim returns the dimension the map was built with.
func (m *Map[T]) Dim() int {
	return m.dim
}

// Len returns the number of resident points, i.e. the count of occupied
// value-table slots.
func (m *Map[T]) Len() int {
	return countOccupied(m.occupied)
}

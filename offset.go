package pshash

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	psherrors "github.com/arkgrid/pshash/errors"
	"github.com/arkgrid/pshash/internal/lattice"
	"github.com/arkgrid/pshash/internal/params"
)

// largeEntry is the build-only counterpart of a published entry: it carries
// the resident's location so the witness stage can recompute H2 against it,
// plus the witness fields (k, hk) that survive into the published Map. The
// location is dropped once the map is frozen (see exportEntries).
type largeEntry[T any] struct {
	location lattice.Point
	contents T
	k        uint32
	hk       uint32
}

// placement is the orchestrator-owned state built up bucket by bucket: the
// occupancy bitmap, the value-table slots, and the offset table. Only the
// candidate offset for the bucket currently being solved is ever written
// concurrently; everything else is read-only during a bucket's search and
// mutated serially once that search closes.
type placement[T any] struct {
	occupied []bool
	slots    []largeEntry[T]
	phi      []lattice.Point
}

// solveOffsets processes buckets strictly in order (largest first), finding
// an offset for each that collides with nothing already placed. Buckets
// after the offset table has been solved are the caller's committed result;
// a failure on any bucket means the whole attempt must retry with a larger
// r-bar (see Build's retry loop).
func solveOffsets[T any](buckets []bucket[T], p params.Params, rng *rand.Rand, workers int) (*placement[T], error) {
	pl := &placement[T]{
		occupied: make([]bool, p.M),
		slots:    make([]largeEntry[T], p.M),
		phi:      make([]lattice.Point, p.R),
	}
	for i := range pl.phi {
		pl.phi[i] = lattice.New(p.Dim)
	}

	for _, b := range buckets {
		phi, slots, ok := searchOffset(b, p, pl.occupied, rng, workers)
		if !ok {
			return nil, psherrors.ErrOffsetSearchFailed
		}
		pl.phi[b.phiIndex] = phi
		for i, d := range b.data {
			slot := slots[i]
			pl.occupied[slot] = true
			pl.slots[slot] = largeEntry[T]{location: d.Location, contents: d.Contents}
		}
	}
	return pl, nil
}

// searchOffset looks for an offset point phi in [0, m) such that every
// datum in b maps to a currently-unoccupied, mutually distinct slot of H.
//
// The search starts at a random offset and scans candidates in disjoint
// contiguous chunks, one per worker, so that "first to publish" rather than
// "lowest index" decides ties — determinism across runs is not a contract
// here, only correctness of whichever candidate wins.
func searchOffset[T any](b bucket[T], p params.Params, occupied []bool, rng *rand.Rand, workers int) (lattice.Point, []uint64, bool) {
	if workers < 1 {
		workers = 1
	}
	start := rng.Uint64() % p.M

	var (
		mu        sync.Mutex
		found     atomic.Bool
		winner    []uint64
		winnerPhi lattice.Point
	)

	chunk := (p.M + uint64(workers) - 1) / uint64(workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := uint64(w) * chunk
		hi := lo + chunk
		if hi > p.M {
			hi = p.M
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			buf := make([]uint64, len(b.data))
			seen := make(map[uint64]struct{}, len(b.data))
			for i := lo; i < hi; i++ {
				if found.Load() {
					return nil
				}
				cand := (start + i) % p.M
				phi := lattice.FromIndex(cand, p.MBar, p.Dim)
				if tryOffset(b.data, phi, occupied, p, buf, seen) {
					mu.Lock()
					if !found.Load() {
						found.Store(true)
						winner = append([]uint64(nil), buf...)
						winnerPhi = phi
					}
					mu.Unlock()
					return nil
				}
			}
			return nil
		})
	}
	// Worker functions never return an error; Wait only blocks for completion.
	_ = g.Wait()

	if !found.Load() {
		return nil, nil, false
	}
	return winnerPhi, winner, true
}

// tryOffset reports whether the candidate offset phi places every datum in
// data on a slot that is both unoccupied in H and distinct from every other
// slot the same candidate assigns within this bucket. On success it fills
// buf with the chosen slots in data order.
func tryOffset[T any](data []Datum[T], phi lattice.Point, occupied []bool, p params.Params, buf []uint64, seen map[uint64]struct{}) bool {
	for k := range seen {
		delete(seen, k)
	}
	for i, d := range data {
		h0 := lattice.ScalarMul(p.M0, d.Location)
		slot := lattice.ToIndex(lattice.Add(h0, phi), p.MBar, p.M)
		if occupied[slot] {
			return false
		}
		if _, dup := seen[slot]; dup {
			return false
		}
		seen[slot] = struct{}{}
		buf[i] = slot
	}
	return true
}

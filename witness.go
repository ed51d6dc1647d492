package pshash

import (
	"sort"

	psherrors "github.com/arkgrid/pshash/errors"
	"github.com/arkgrid/pshash/internal/lattice"
	"github.com/arkgrid/pshash/internal/params"
)

// h2 is the witness hash: the resident's location dotted with its per-axis
// discriminator powers (k, k^2, ..., k^dim), scaled by M2. k must never be
// zero — IncreasingPow(0, _) collapses to the zero point, which would make
// every location hash to zero regardless of its coordinates.
func h2(p lattice.Point, k uint32, m2 uint32) uint32 {
	mix := lattice.IncreasingPow(k, len(p))
	return lattice.Dot(p, mix) * m2
}

// assignWitnesses runs the three-sweep hash_positions procedure over the
// full universe. It seeds every occupied slot with k=1, finds which
// occupied slots a non-member lattice point could be mistaken for (the
// "contested" slots), then rehashes just those slots until every colliding
// non-member is distinguishable from the resident.
//
// The universe scan dominates build time for large domains; a cube of side
// s in d dimensions costs s^d, independent of how sparse the input is.
func assignWitnesses[T any](pl *placement[T], prm params.Params, domainSize Point, maxRehash int) error {
	dim := prm.Dim
	s := uint64(domainSize[0])
	u := ipow(s, dim)

	for slot, occ := range pl.occupied {
		if !occ {
			continue
		}
		e := &pl.slots[slot]
		e.k = 1
		e.hk = h2(e.location, 1, prm.M2)
	}

	// Sweep 1's pointer-advance is only correct if the residents are
	// visited in the same order as the universe scan. The reference
	// construction walks input data in insertion order while advancing
	// the pointer on a coordinate-order universe walk, which only lines
	// up if that data happens to already be universe-sorted. It is not,
	// in general, so a sorted working copy of the resident universe
	// indices is built here instead of trusting insertion order.
	residentIndices := make([]uint64, 0, countOccupied(pl.occupied))
	for slot, occ := range pl.occupied {
		if occ {
			residentIndices = append(residentIndices, lattice.ToIndex(pl.slots[slot].location, s, lattice.Unbounded))
		}
	}
	sort.Slice(residentIndices, func(i, j int) bool { return residentIndices[i] < residentIndices[j] })

	contested := make([]bool, prm.M)

	j := 0
	for i := uint64(0); i < u; i++ {
		if j < len(residentIndices) && residentIndices[j] == i {
			j++
			continue
		}
		p := lattice.FromIndex(i, s, dim)
		slot := slotOf(p, prm, pl.phi)
		if !pl.occupied[slot] {
			continue
		}
		e := pl.slots[slot]
		if h2(p, e.k, prm.M2) == e.hk {
			contested[slot] = true
		}
	}

	collisions := make(map[uint64][]uint64)
	j = 0
	for i := uint64(0); i < u; i++ {
		if j < len(residentIndices) && residentIndices[j] == i {
			j++
			continue
		}
		p := lattice.FromIndex(i, s, dim)
		slot := slotOf(p, prm, pl.phi)
		if contested[slot] {
			collisions[slot] = append(collisions[slot], i)
		}
	}

	// The rehash loop has no bound in the reference description beyond
	// "grows k until unique". Adversarial inputs could stall it forever,
	// so k is capped at maxRehash; hitting the cap signals the same
	// r-bar-growth retry that an exhausted offset search does.
	for slot, isContested := range contested {
		if !isContested {
			continue
		}
		e := &pl.slots[slot]
		for {
			e.k++
			if e.k > uint32(maxRehash) {
				return psherrors.ErrRehashLimitReached
			}
			e.hk = h2(e.location, e.k, prm.M2)

			unique := true
			for _, ci := range collisions[uint64(slot)] {
				q := lattice.FromIndex(ci, s, dim)
				if h2(q, e.k, prm.M2) == e.hk {
					unique = false
					break
				}
			}
			if unique {
				break
			}
		}
	}

	return nil
}

// slotOf computes the value-table slot a point maps to under the given
// parameters and offset table. It is shared by the witness sweeps and by
// Map.Get, since both need the exact same slot function.
func slotOf(p lattice.Point, prm params.Params, phi []lattice.Point) uint64 {
	h0 := lattice.ScalarMul(prm.M0, p)
	h1 := lattice.ScalarMul(prm.M1, p)
	i := lattice.ToIndex(h1, prm.RBar, prm.R)
	return lattice.ToIndex(lattice.Add(h0, phi[i]), prm.MBar, prm.M)
}

func ipow(base uint64, exp int) uint64 {
	r := uint64(1)
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

func countOccupied(occ []bool) int {
	n := 0
	for _, o := range occ {
		if o {
			n++
		}
	}
	return n
}

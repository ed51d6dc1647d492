package pshash

import (
	"sort"

	"github.com/arkgrid/pshash/internal/lattice"
	"github.com/arkgrid/pshash/internal/params"
)

// bucket groups the input data that shares a secondary-hash index.
type bucket[T any] struct {
	phiIndex uint64
	data     []Datum[T]
}

// buildBuckets partitions data by the secondary hash M1*location and returns
// only the non-empty buckets, sorted by descending population.
//
// Placing the largest buckets first makes their offset search run against
// the emptiest possible value table; by the time small buckets are
// processed, the table is nearly as sparse as it will ever get for them.
func buildBuckets[T any](data []Datum[T], p params.Params) []bucket[T] {
	byIndex := make([]bucket[T], p.R)
	for i := range byIndex {
		byIndex[i].phiIndex = uint64(i)
	}
	for _, d := range data {
		h1 := lattice.ScalarMul(p.M1, d.Location)
		idx := lattice.ToIndex(h1, p.RBar, p.R)
		byIndex[idx].data = append(byIndex[idx].data, d)
	}

	nonEmpty := make([]bucket[T], 0, len(byIndex))
	for _, b := range byIndex {
		if len(b.data) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	sort.Slice(nonEmpty, func(i, j int) bool {
		return len(nonEmpty[i].data) > len(nonEmpty[j].data)
	})
	return nonEmpty
}

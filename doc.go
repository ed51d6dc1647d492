// Package pshash builds and queries a perfect spatial hash (PSH): a
// compact, collision-free associative map from a sparse set of integer
// lattice points to user-supplied payloads. The construction bucketizes
// input points by a secondary hash, searches for a per-bucket offset that
// avoids collisions in the value table, and finally assigns each occupied
// slot a small discriminator so that lookups can reject non-members
// without ever storing their coordinates.
//
// # Basic usage
//
// Building a map:
//
//	data := []pshash.Datum[string]{
//	    {Location: pshash.Point{0, 0}, Contents: "a"},
//	    {Location: pshash.Point{5, 7}, Contents: "b"},
//	}
//	m, err := pshash.Build(data, pshash.Point{32, 32})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Querying it, from any number of goroutines:
//
//	v, err := m.Get(pshash.Point{5, 7})
//	if err != nil {
//	    // absent
//	}
//
// # Package structure
//
//   - Public API: build.go (Build), map.go (Map, Get, MemorySize)
//   - Configuration: options.go (Option, With* functions)
//   - Construction stages: bucket.go (bucketing), offset.go (offset
//     search), witness.go (location-witness assignment)
//   - Collaborators: internal/lattice (fixed-dimension point arithmetic),
//     internal/params (table geometry and multiplier selection)
package pshash

package pshash

import (
	"fmt"
	"math/rand/v2"

	psherrors "github.com/arkgrid/pshash/errors"
	"github.com/arkgrid/pshash/internal/params"
)

// Build constructs a perfect spatial hash over data. Every location must be
// componentwise within [0, domainSize), all locations must be unique, and
// domainSize must be a positive cube (every axis equal), since the
// location-witness stage assumes it can scan the universe under a single
// side length. Violating these preconditions is undefined behavior; Build
// does not defend against it beyond the cheap checks below.
//
// On success, Get(p) == contents for every input point, and Get on any
// lattice point outside data fails with high probability.
func Build[T any](data []Datum[T], domainSize Point, opts ...Option) (*Map[T], error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("pshash.Build: %w", psherrors.ErrEmptyInput)
	}

	dim := len(domainSize)
	if dim == 0 {
		return nil, fmt.Errorf("pshash.Build: %w", psherrors.ErrInvalidDomain)
	}
	s := domainSize[0]
	for _, axis := range domainSize {
		if axis == 0 || axis != s {
			return nil, fmt.Errorf("pshash.Build: domain_size=%v: %w", domainSize, psherrors.ErrInvalidDomain)
		}
	}

	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	prm := params.Choose(rng, len(data), dim)

	for {
		if prm.BadRatio() {
			cfg.logRetry("bad m-bar/r-bar ratio, growing r-bar", retryFields(prm))
			prm = prm.Grow(rng)
			continue
		}

		buckets := buildBuckets(data, prm)

		pl, err := solveOffsets(buckets, prm, rng, cfg.workers)
		if err != nil {
			cfg.logRetry("offset search exhausted, growing r-bar", retryFields(prm))
			prm = prm.Grow(rng)
			continue
		}

		if err := assignWitnesses(pl, prm, domainSize, cfg.maxRehash); err != nil {
			cfg.logRetry("witness rehash hit the cap, growing r-bar", retryFields(prm))
			prm = prm.Grow(rng)
			continue
		}

		return &Map[T]{
			dim:        dim,
			prm:        prm,
			domainSize: domainSize.Clone(),
			phi:        pl.phi,
			slots:      exportEntries(pl),
			occupied:   pl.occupied,
		}, nil
	}
}

// exportEntries strips the build-only location field from every placed
// entry, keeping only what a published Map needs to answer queries.
func exportEntries[T any](pl *placement[T]) []entry[T] {
	out := make([]entry[T], len(pl.slots))
	for i, occ := range pl.occupied {
		if !occ {
			continue
		}
		e := pl.slots[i]
		out[i] = entry[T]{k: e.k, hk: e.hk, contents: e.contents}
	}
	return out
}

func retryFields(prm params.Params) map[string]any {
	return map[string]any{"r_bar": prm.RBar, "r": prm.R, "m": prm.M}
}

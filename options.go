package pshash

import (
	"time"

	"github.com/sirupsen/logrus"
)

// defaultOffsetWorkers is the reference construction's fixed thread-pool
// size for the parallel offset search.
const defaultOffsetWorkers = 8

// defaultMaxRehash caps the witness stage's per-slot discriminator growth
// (open question #2's required fix against unbounded rehashing).
const defaultMaxRehash = 32

// Option configures a Build call.
type Option func(*buildConfig)

type buildConfig struct {
	workers   int
	maxRehash int
	seed      uint64
	logger    *logrus.Logger
}

func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		workers:   defaultOffsetWorkers,
		maxRehash: defaultMaxRehash,
		seed:      uint64(time.Now().UnixNano()),
	}
}

// WithWorkers sets the number of parallel workers used by the offset
// search. The reference construction uses eight.
func WithWorkers(n int) Option {
	return func(c *buildConfig) {
		c.workers = n
	}
}

// WithMaxRehash caps how far the witness stage's per-slot discriminator k
// may grow before a contested slot is treated as a construction failure
// (which triggers the same r-bar-growth retry as an exhausted offset
// search).
func WithMaxRehash(n int) Option {
	return func(c *buildConfig) {
		c.maxRehash = n
	}
}

// WithSeed pins the random generator driving multiplier selection and the
// offset search's random start. Build seeds from wall-clock time by
// default; tests that need reproducible builds should use this.
func WithSeed(seed uint64) Option {
	return func(c *buildConfig) {
		c.seed = seed
	}
}

// WithLogger attaches a structured logger that receives one entry per
// construction retry (bad ratio, exhausted offset search, or rehash-limit
// hit). Construction is silent by default; this is purely diagnostic and
// never affects the result of a successful build.
func WithLogger(l *logrus.Logger) Option {
	return func(c *buildConfig) {
		c.logger = l
	}
}

func (c *buildConfig) logRetry(reason string, fields logrus.Fields) {
	if c.logger == nil {
		return
	}
	c.logger.WithFields(fields).Warn(reason)
}

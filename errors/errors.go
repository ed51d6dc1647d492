// Package errors defines all exported error sentinels for the pshash library.
//
// This is the single source of truth for error values. The top-level pshash
// package imports its errors from here, so callers can use errors.Is
// against these sentinels across package boundaries.
package errors

import "errors"

// Precondition failures: ErrEmptyInput and ErrInvalidDomain are returned by
// Build, ErrDimensionMismatch by Map.Get.
var (
	ErrEmptyInput        = errors.New("pshash: cannot build a map with zero data points")
	ErrInvalidDomain     = errors.New("pshash: domain_size must be a positive cube (equal, nonzero axes)")
	ErrDimensionMismatch = errors.New("pshash: point dimension does not match map dimension")
)

// Construction retry signals. These are internal to the build orchestration
// loop and are absorbed by it; they are never returned from Build.
var (
	ErrBadRatio           = errors.New("pshash: m-bar mod r-bar lands on a pathological ratio")
	ErrOffsetSearchFailed = errors.New("pshash: offset search exhausted [0, m) for a bucket")
	ErrRehashLimitReached = errors.New("pshash: witness rehash exceeded the discriminator cap")
)

// Query errors
var (
	ErrAbsent = errors.New("pshash: point is not a member of the map")
)

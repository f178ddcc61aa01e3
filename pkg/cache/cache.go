// Package cache provides pluggable caching for pipeline stages.
//
// Planning artifacts are derived deterministically from their inputs, so
// every stage result can be cached under a content-hash key: allocations
// under a hash of the model inputs, layouts under the allocation hash plus
// layout options, rendered artifacts under the layout hash plus render
// options.
//
// Backends: [FileCache] for CLI usage (XDG cache dir), [RedisCache] and
// [MongoCache] for server deployments, [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs per stage. Solve results depend only on their inputs and never go
// stale; the shorter artifact TTL just bounds disk usage.
const (
	TTLSolve    = 0 // no expiry
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with TTL support.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout options that affect placement output.
type LayoutKeyOpts struct {
	UnitsPerStar int
	AspectRatio  float64
	RetryBudget  int
	Seed         int64

	// Weights are the per-form clustering weights; they change where units
	// land, so they are part of the key.
	Weights map[string]float64
}

// ArtifactKeyOpts are the render options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format   string
	CellSize int
	Legend   bool
	Scale    float64
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// SolveKey keys an allocation by the hash of its problem definition.
	SolveKey(problemHash string) string

	// LayoutKey keys a placement by the allocation hash and layout options.
	LayoutKey(allocationHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered bytes by the layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for allocation caching.
func (k *DefaultKeyer) SolveKey(problemHash string) string {
	return hashKey("solve", problemHash)
}

// LayoutKey generates a key for placement caching.
func (k *DefaultKeyer) LayoutKey(allocationHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", allocationHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

package solver

import "github.com/katalvlaran/semcov/matrix"

// Precision selects the engine's floating-point storage type. It is fixed
// at construction; there is no runtime switching.
type Precision int

const (
	// Double stores engine state as float64 (the zero-value default).
	Double Precision = iota
	// Single stores engine state as float32; the public float64 surface
	// converts on access.
	Single
)

// String implements fmt.Stringer for diagnostics.
func (p Precision) String() string {
	switch p {
	case Double:
		return "float64"
	case Single:
		return "float32"
	default:
		return "unknown"
	}
}

// defaultSeed keeps random weight initialization reproducible out of the box.
const defaultSeed int64 = 1

// Options configures New. The zero value is valid: Double precision,
// random weight initialization with the default seed.
type Options struct {
	// Precision selects Double (default) or Single engine storage.
	Precision Precision
	// Parameters optionally supplies initial edge weights as an
	// (L+V)×V matrix in the structure's row convention (latent rows
	// first). Only entries at structural edges are read; when nil,
	// edge weights are drawn from a seeded standard normal.
	Parameters *matrix.Dense
	// Seed drives random weight initialization when Parameters is nil.
	// Zero selects the package default seed.
	Seed int64
}

// DefaultOptions returns the canonical zero-value configuration.
func DefaultOptions() *Options { return &Options{} }

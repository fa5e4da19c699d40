package dag

import "errors"

// Sentinel errors for structure ingestion and compilation. All are
// invalid-argument conditions raised before any solver buffer exists;
// callers match them with errors.Is.
var (
	// ErrNilStructure indicates a nil *Structure was passed to Compile.
	ErrNilStructure = errors.New("dag: structure is nil")
	// ErrEmptyStructure indicates the structure matrix has no rows or no columns.
	ErrEmptyStructure = errors.New("dag: structure needs at least one row and one column")
	// ErrRaggedStructure indicates rows of differing lengths.
	ErrRaggedStructure = errors.New("dag: all structure rows must have the same length")
	// ErrLatentCount indicates fewer rows than columns, which would make the
	// latent count negative.
	ErrLatentCount = errors.New("dag: structure must have at least as many rows as columns")
	// ErrNotLayered indicates the visible column order is not topological:
	// some edge does not cross strictly increasing layer indices.
	ErrNotLayered = errors.New("dag: structure is not topologically ordered by column")
)

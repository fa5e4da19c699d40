package solver

import "errors"

// Sentinel errors for the solver package; callers match with errors.Is.
// Invalid-argument conditions are reported synchronously before any buffer
// mutation, so a failed call leaves no partial state behind.
var (
	// ErrPrecision indicates an unsupported Options.Precision value.
	ErrPrecision = errors.New("solver: precision must be Single or Double")
	// ErrParameterShape indicates the optional initial parameters do not
	// match the structure matrix shape.
	ErrParameterShape = errors.New("solver: parameters must have the same shape as the structure")
	// ErrSampleShape indicates the sample covariance is missing, non-square
	// or does not match the visible dimension.
	ErrSampleShape = errors.New("solver: sample covariance must be a square visible×visible matrix")
	// ErrNoSampleCovariance indicates a loss or gradient query before any
	// sample covariance was set.
	ErrNoSampleCovariance = errors.New("solver: sample covariance is not set")
	// ErrForwardRequired indicates Backward was called before Forward.
	ErrForwardRequired = errors.New("solver: backward requires a prior forward pass")
	// ErrNotPositiveDefinite indicates a log-determinant over a matrix that
	// is not positive definite.
	ErrNotPositiveDefinite = errors.New("solver: matrix is not positive definite")
)

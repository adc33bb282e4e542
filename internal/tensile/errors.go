package tensile

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is matched by every InsufficientDataError.
	ErrInsufficientData = errors.New("tensile: insufficient data")

	// ErrDegenerateGeometry is matched by every DegenerateGeometryError.
	ErrDegenerateGeometry = errors.New("tensile: degenerate geometry")

	// ErrLengthMismatch is returned when paired series differ in length.
	ErrLengthMismatch = errors.New("tensile: series length mismatch")
)

// InsufficientDataError reports a fit or search with too few samples.
type InsufficientDataError struct {
	Op   string // operation that failed, e.g. "power-law fit"
	Need int    // minimum number of samples
	Got  int    // samples available after filtering
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("tensile: %s needs at least %d points, got %d", e.Op, e.Need, e.Got)
}

// Is makes errors.Is(err, ErrInsufficientData) true.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// DegenerateGeometryError reports a non-positive geometric divisor.
type DegenerateGeometryError struct {
	Quantity string // "diameter", "original length" or "original area"
	Value    float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("tensile: %s must be positive, got %g", e.Quantity, e.Value)
}

// Is makes errors.Is(err, ErrDegenerateGeometry) true.
func (e *DegenerateGeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

func checkPaired(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	return nil
}

package tensile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultElasticPoints is the number of leading samples used for the modulus fit.
	DefaultElasticPoints = 20

	// DefaultOffset is the 0.2% strain offset of the yield construction.
	DefaultOffset = 0.002
)

// YieldPoint is the result of the offset-yield search.
//
// Found is false when the curve never meets the offset line; the point is
// then the last sample of the series.
type YieldPoint struct {
	Stress float64
	Strain float64
	Index  int
	Found  bool
}

// YoungsModulus fits a straight line through the first elasticPoints samples
// of the curve and returns its slope. All samples are used when fewer exist.
// The window needs at least two distinct strain values.
func YoungsModulus(stress, strain []float64, elasticPoints int) (float64, error) {
	if err := checkPaired(stress, strain); err != nil {
		return 0, err
	}

	n := min(elasticPoints, len(strain))
	if n < 2 {
		return 0, &InsufficientDataError{Op: "modulus fit", Need: 2, Got: max(n, 0)}
	}

	if d := distinct(strain[:n]); d < 2 {
		return 0, &InsufficientDataError{Op: "modulus fit (distinct strains)", Need: 2, Got: d}
	}

	// y = alpha + beta*x, beta is the modulus
	_, beta := stat.LinearRegression(strain[:n], stress[:n], nil, false)
	return beta, nil
}

// OffsetYield finds the offset yield point: the first sample at which the
// offset line E·(ε − offset) is non-negative and the measured stress is at or
// above it. No interpolation is done between samples.
func OffsetYield(stress, strain []float64, modulus, offset float64) (YieldPoint, error) {
	if err := checkPaired(stress, strain); err != nil {
		return YieldPoint{}, err
	}
	if len(stress) == 0 {
		return YieldPoint{}, &InsufficientDataError{Op: "offset yield search", Need: 1, Got: 0}
	}

	// The last sample is reserved for the no-yield fallback.
	for i := 0; i < len(stress)-1; i++ {
		line := modulus * (strain[i] - offset)
		if line >= 0 && stress[i] >= line {
			return YieldPoint{Stress: stress[i], Strain: strain[i], Index: i, Found: true}, nil
		}
	}

	last := len(stress) - 1
	return YieldPoint{Stress: stress[last], Strain: strain[last], Index: last}, nil
}

// UltimateStrength returns the maximum stress and the index of its first occurrence.
func UltimateStrength(stress []float64) (float64, int, error) {
	if len(stress) == 0 {
		return 0, 0, &InsufficientDataError{Op: "ultimate strength", Need: 1, Got: 0}
	}
	idx := floats.MaxIdx(stress)
	return stress[idx], idx, nil
}

// distinct counts distinct values in x, stopping at two.
func distinct(x []float64) int {
	if len(x) == 0 {
		return 0
	}
	for _, v := range x[1:] {
		if v != x[0] {
			return 2
		}
	}
	return 1
}

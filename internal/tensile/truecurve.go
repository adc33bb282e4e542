package tensile

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PowerLaw is the hardening law σₜ = A·εₜⁿ.
type PowerLaw struct {
	A float64 // strength coefficient
	N float64 // strain-hardening exponent
}

// Stress evaluates the law at the given true strain.
func (p PowerLaw) Stress(trueStrain float64) float64 {
	return p.A * math.Pow(trueStrain, p.N)
}

// TrueStress converts engineering stress to true stress, σₑ·(1+εₑ).
// The conversion assumes constant volume and only holds before necking;
// callers truncate the series at the ultimate strength.
func TrueStress(engStress, engStrain []float64) []float64 {
	out := make([]float64, len(engStress))
	for i, s := range engStress {
		out[i] = s * (1 + engStrain[i])
	}
	return out
}

// TrueStrain converts engineering strain to true strain, ln(1+εₑ).
func TrueStrain(engStrain []float64) []float64 {
	out := make([]float64, len(engStrain))
	for i, e := range engStrain {
		out[i] = math.Log1p(e)
	}
	return out
}

// FitPowerLaw fits σₜ = A·εₜⁿ over [start, end) by linear regression in
// log-log space. Samples with non-positive strain or stress are skipped, and
// the remaining strains must not all be equal.
// Bounds outside the series are clamped.
func FitPowerLaw(trueStress, trueStrain []float64, start, end int) (PowerLaw, error) {
	if err := checkPaired(trueStress, trueStrain); err != nil {
		return PowerLaw{}, err
	}

	start = clamp(start, 0, len(trueStress))
	end = clamp(end, 0, len(trueStress))

	var logStrain, logStress []float64
	for i := start; i < end; i++ {
		if trueStrain[i] > 0 && trueStress[i] > 0 {
			logStrain = append(logStrain, math.Log(trueStrain[i]))
			logStress = append(logStress, math.Log(trueStress[i]))
		}
	}
	if len(logStrain) < 2 {
		return PowerLaw{}, &InsufficientDataError{Op: "power-law fit", Need: 2, Got: len(logStrain)}
	}

	if d := distinct(logStrain); d < 2 {
		return PowerLaw{}, &InsufficientDataError{Op: "power-law fit (distinct strains)", Need: 2, Got: d}
	}

	logA, n := stat.LinearRegression(logStrain, logStress, nil, false)
	return PowerLaw{A: math.Exp(logA), N: n}, nil
}

// NeckingStrain returns the true strain at necking onset predicted by the
// Considère criterion for a power-law material, which equals n.
func NeckingStrain(n float64) float64 {
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

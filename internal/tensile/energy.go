package tensile

// Trapezoid integrates y over x with the trapezoidal rule. x is used in the
// given order; fewer than two samples integrate to zero.
func Trapezoid(y, x []float64) float64 {
	n := min(len(x), len(y))
	var area float64
	for i := 0; i+1 < n; i++ {
		area += (x[i+1] - x[i]) * (y[i] + y[i+1]) / 2
	}
	return area
}

// StrainEnergy is the area under the stress-strain curve.
func StrainEnergy(stress, strain []float64) float64 {
	return Trapezoid(stress, strain)
}

// ModulusOfResilience is the strain energy absorbed up to and including yieldIdx.
func ModulusOfResilience(stress, strain []float64, yieldIdx int) float64 {
	end := clamp(yieldIdx+1, 0, min(len(stress), len(strain)))
	return Trapezoid(stress[:end], strain[:end])
}

// ModulusOfToughness is the total strain energy absorbed up to fracture.
func ModulusOfToughness(stress, strain []float64) float64 {
	return Trapezoid(stress, strain)
}

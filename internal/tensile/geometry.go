package tensile

import "math"

// CrossSectionalArea returns the area of a circular section of the given diameter.
func CrossSectionalArea(diameter float64) (float64, error) {
	if diameter <= 0 {
		return 0, &DegenerateGeometryError{Quantity: "diameter", Value: diameter}
	}
	return math.Pi * math.Pow(diameter/2, 2), nil
}

// EngineeringStrain divides each displacement by the original gauge length.
func EngineeringStrain(displacement []float64, originalLength float64) ([]float64, error) {
	if originalLength <= 0 {
		return nil, &DegenerateGeometryError{Quantity: "original length", Value: originalLength}
	}
	strain := make([]float64, len(displacement))
	for i, d := range displacement {
		strain[i] = d / originalLength
	}
	return strain, nil
}

// EngineeringStress divides each load by the original cross-sectional area.
func EngineeringStress(load []float64, originalArea float64) ([]float64, error) {
	if originalArea <= 0 {
		return nil, &DegenerateGeometryError{Quantity: "original area", Value: originalArea}
	}
	stress := make([]float64, len(load))
	for i, p := range load {
		stress[i] = p / originalArea
	}
	return stress, nil
}

package diagram

import (
	"github.com/strenlab/tensile/internal/material"
)

// CurveDiagramData holds what the stress-strain figures draw for one specimen.
type CurveDiagramData struct {
	Name  string // short name, used in file names
	Label string // title text, defaults to Name

	// Engineering curve
	Strain []float64
	Stress []float64 // MPa

	// True curve up to UTS
	TrueStrain []float64
	TrueStress []float64 // MPa

	YoungsModulus float64 // MPa
	Offset        float64 // yield offset strain

	YieldStrain float64
	YieldStress float64
	YieldIndex  int
	YieldFound  bool

	UTSStrain float64
	UTS       float64
	UTSIndex  int

	PowerLawA      float64
	PowerLawN      float64
	PowerLawFitted bool
}

// FromResult fills the diagram data from an analysis result.
func FromResult(r *material.Result) CurveDiagramData {
	return CurveDiagramData{
		Name:           r.Name,
		Label:          r.Name,
		Strain:         r.Strain,
		Stress:         r.Stress,
		TrueStrain:     r.TrueStrain,
		TrueStress:     r.TrueStress,
		YoungsModulus:  r.YoungsModulus,
		Offset:         r.Offset,
		YieldStrain:    r.Yield.Strain,
		YieldStress:    r.Yield.Stress,
		YieldIndex:     r.Yield.Index,
		YieldFound:     r.Yield.Found,
		UTSStrain:      r.UTSStrain,
		UTS:            r.UTS,
		UTSIndex:       r.UTSIndex,
		PowerLawA:      r.PowerLaw.A,
		PowerLawN:      r.PowerLaw.N,
		PowerLawFitted: r.PowerLawFitted,
	}
}

func (d CurveDiagramData) title() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// Series is one named curve of a comparison figure.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Package material runs the complete tensile analysis of one specimen.
//
// Analyze chains the engine functions of package tensile the same way for
// every specimen and collects the outcome in a Result. It is also the only
// place where a failed power-law fit may be replaced by zero coefficients;
// Result.PowerLawFitted records whether that happened.
package material

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/tensile"
)

// Options tunes the analysis.
type Options struct {
	ElasticPoints  int     // leading samples used for the modulus fit
	Offset         float64 // strain offset of the yield construction
	PowerLawTrim   int     // samples dropped at both ends of the pre-UTS curve before the power-law fit
	StrictPowerLaw bool    // return power-law fit errors instead of zero coefficients
}

// DefaultOptions returns the settings used for the reference copper alloys.
func DefaultOptions() Options {
	return Options{
		ElasticPoints: 30,
		Offset:        tensile.DefaultOffset,
		PowerLawTrim:  10,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.ElasticPoints < 2 {
		return fmt.Errorf("invalid elastic points: %d (need at least 2)", o.ElasticPoints)
	}
	if o.Offset < 0 {
		return fmt.Errorf("invalid yield offset: %g", o.Offset)
	}
	if o.PowerLawTrim < 0 {
		return fmt.Errorf("invalid power-law trim: %d", o.PowerLawTrim)
	}
	return nil
}

// Result holds every property computed for one specimen.
type Result struct {
	Name string

	// Engineering curve as analyzed
	Strain []float64
	Stress []float64 // MPa

	// True curve up to (excluding) the UTS sample
	TrueStrain []float64
	TrueStress []float64 // MPa

	YoungsModulus float64 // MPa
	Offset        float64 // strain offset used for Yield
	Yield         tensile.YieldPoint

	UTS       float64 // MPa
	UTSStrain float64
	UTSIndex  int

	PowerLaw       tensile.PowerLaw
	PowerLawFitted bool
	PowerLawError  string
	NeckingStrain  float64 // true strain, Considère estimate

	Resilience     float64 // MJ/m³
	Toughness      float64 // MJ/m³
	FractureStrain float64
}

// Analyze computes the material properties of a specimen curve.
func Analyze(curve *dataset.Curve, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if curve.Len() != len(curve.Stress) {
		return nil, fmt.Errorf("%s: %w", curve.Name, tensile.ErrLengthMismatch)
	}
	if curve.Len() == 0 {
		return nil, fmt.Errorf("%s: curve has no samples", curve.Name)
	}

	strain, stress := curve.Strain, curve.Stress
	result := &Result{
		Name:           curve.Name,
		Strain:         strain,
		Stress:         stress,
		Offset:         opts.Offset,
		FractureStrain: strain[len(strain)-1],
	}

	e, err := tensile.YoungsModulus(stress, strain, opts.ElasticPoints)
	if err != nil {
		return nil, fmt.Errorf("%s: young's modulus: %w", curve.Name, err)
	}
	result.YoungsModulus = e

	result.Yield, err = tensile.OffsetYield(stress, strain, e, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: yield: %w", curve.Name, err)
	}

	result.UTS, result.UTSIndex, err = tensile.UltimateStrength(stress)
	if err != nil {
		return nil, fmt.Errorf("%s: ultimate strength: %w", curve.Name, err)
	}
	result.UTSStrain = strain[result.UTSIndex]

	// True curves are only meaningful before necking
	uts := result.UTSIndex
	result.TrueStrain = tensile.TrueStrain(strain[:uts])
	result.TrueStress = tensile.TrueStress(stress[:uts], strain[:uts])

	law, err := tensile.FitPowerLaw(result.TrueStress, result.TrueStrain, opts.PowerLawTrim, uts-opts.PowerLawTrim)
	switch {
	case err == nil:
		result.PowerLaw = law
		result.PowerLawFitted = true
		result.NeckingStrain = tensile.NeckingStrain(law.N)
	case opts.StrictPowerLaw || !errors.Is(err, tensile.ErrInsufficientData):
		return nil, fmt.Errorf("%s: power law: %w", curve.Name, err)
	default:
		slog.Debug("power-law fit skipped", "specimen", curve.Name, "err", err)
		result.PowerLawError = err.Error()
	}

	result.Resilience = tensile.ModulusOfResilience(stress, strain, result.Yield.Index)
	result.Toughness = tensile.ModulusOfToughness(stress, strain)

	return result, nil
}

// Package tensile computes mechanical properties from tensile-test data.
//
// Every function operates on ordered, index-aligned float64 series
// (strain/displacement and stress/load) and returns new values without
// touching its inputs. The package holds no state, so independent series may
// be processed concurrently.
//
// Units are the caller's: stress and modulus in one pressure unit (MPa in
// this repository), strain dimensionless, energies in stress × strain.
package tensile

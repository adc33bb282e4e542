// Package dataset turns raw test files into engineering stress-strain curves.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/strenlab/tensile/internal/lis"
)

// Format identifies a supported input file format.
type Format string

const (
	FormatLIS Format = "lis"
	FormatCSV Format = "csv"
)

// Curve is an engineering stress-strain curve of one specimen.
type Curve struct {
	Name   string
	Source string
	Strain []float64 // dimensionless
	Stress []float64 // MPa
}

// Len returns the number of samples.
func (c *Curve) Len() int {
	return len(c.Strain)
}

// Truncate returns a curve sharing the first n samples.
func (c *Curve) Truncate(n int) *Curve {
	n = max(0, min(n, c.Len()))
	return &Curve{Name: c.Name, Source: c.Source, Strain: c.Strain[:n], Stress: c.Stress[:n]}
}

// LoadOptions controls how a file is read.
type LoadOptions struct {
	Name        string  // defaults to the file name without extension
	Format      Format  // defaults to the file extension
	GaugeLength float64 // mm, for displacement input
	Diameter    float64 // mm, for load input
	Area        float64 // mm², for load input; replaces Diameter when set
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lis":
		return FormatLIS, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("cannot infer format of %q, use lis or csv", path)
}

// Load reads a curve from a .lis or .csv file.
func Load(path string, opts LoadOptions) (*Curve, error) {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var (
		curve *Curve
		err   error
	)
	switch format {
	case FormatLIS:
		curve, err = loadLIS(path, opts)
	case FormatCSV:
		curve, err = LoadCSV(path, opts)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	curve.Name = name
	curve.Source = path
	return curve, nil
}

func loadLIS(path string, opts LoadOptions) (*Curve, error) {
	rec, err := lis.ParseFile(path)
	if err != nil {
		return nil, err
	}

	gauge := opts.GaugeLength
	if gauge == 0 {
		gauge = lis.DefaultGaugeLength
	}
	strain, err := rec.Strain(gauge)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Curve{Strain: strain, Stress: rec.Stress}, nil
}

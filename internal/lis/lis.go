// Package lis reads tensile-test exports in the instrument's ".lis" text format.
//
// A file is ISO-8859-1 encoded. Measurement rows follow a "[Daten]" section
// marker and two header lines; columns are tab separated and use a decimal
// comma. Column 1 holds the crosshead displacement (mm) and column 4 the
// engineering stress (MPa).
package lis

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/strenlab/tensile/internal/tensile"
)

// DefaultGaugeLength is the extensometer gauge length (mm) of the test rig.
const DefaultGaugeLength = 25.0

const (
	dataMarker      = "[Daten]"
	headerLines     = 2
	minColumns      = 5
	displacementCol = 1
	stressCol       = 4
)

// Record holds the usable rows of a .lis file.
type Record struct {
	Displacement []float64 // mm
	Stress       []float64 // MPa
}

// ParseFile opens and parses a .lis file.
func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse reads a .lis stream. Rows with fewer than five columns, unparsable
// numbers or negative stress are skipped.
func Parse(r io.Reader) (*Record, error) {
	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Locate the data section
	found := false
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), dataMarker) {
			found = true
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("could not find %s section", dataMarker)
	}

	// Skip the column header and unit lines
	for i := 0; i < headerLines; i++ {
		if !scanner.Scan() {
			break
		}
	}

	rec := &Record{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(strings.ReplaceAll(line, ",", "."), "\t")
		if len(parts) < minColumns {
			continue
		}

		displacement, err := strconv.ParseFloat(strings.TrimSpace(parts[displacementCol]), 64)
		if err != nil {
			continue
		}
		stress, err := strconv.ParseFloat(strings.TrimSpace(parts[stressCol]), 64)
		if err != nil {
			continue
		}
		if !(stress >= 0) {
			continue
		}

		rec.Displacement = append(rec.Displacement, displacement)
		rec.Stress = append(rec.Stress, stress)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Strain converts the displacement column to engineering strain.
func (r *Record) Strain(gaugeLength float64) ([]float64, error) {
	return tensile.EngineeringStrain(r.Displacement, gaugeLength)
}

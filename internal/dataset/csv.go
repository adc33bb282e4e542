package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/strenlab/tensile/internal/tensile"
)

var (
	strainColumns       = []string{"strain_e", "strain"}
	stressColumns       = []string{"stress_e_mpa", "stress_mpa", "stress"}
	displacementColumns = []string{"displacement_mm", "displacement"}
	loadColumns         = []string{"load_n", "load"}
)

// LoadCSV reads a curve from a CSV file with a header row. The file holds
// either strain and stress columns, or displacement and load columns that are
// converted with the gauge length and the diameter or area in opts.
func LoadCSV(path string, opts LoadOptions) (*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	curve, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return curve, nil
}

// ReadCSV is LoadCSV on an open stream.
func ReadCSV(r io.Reader, opts LoadOptions) (*Curve, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}

	// spreadsheet exports often start with a byte order mark
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	xCol, yCol := column(header, strainColumns), column(header, stressColumns)
	raw := false
	if xCol < 0 || yCol < 0 {
		xCol, yCol = column(header, displacementColumns), column(header, loadColumns)
		raw = true
	}
	if xCol < 0 || yCol < 0 {
		return nil, fmt.Errorf("header %v has neither strain/stress nor displacement/load columns", header)
	}

	var xs, ys []float64
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		x, err := parseField(row, xCol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := parseField(row, yCol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if !raw {
		return &Curve{Strain: xs, Stress: ys}, nil
	}

	strain, err := tensile.EngineeringStrain(xs, opts.GaugeLength)
	if err != nil {
		return nil, fmt.Errorf("displacement input: %w", err)
	}
	area := opts.Area
	if area == 0 {
		if area, err = tensile.CrossSectionalArea(opts.Diameter); err != nil {
			return nil, fmt.Errorf("load input: %w", err)
		}
	}
	stress, err := tensile.EngineeringStress(ys, area)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	return &Curve{Strain: strain, Stress: stress}, nil
}

func column(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func parseField(row []string, col int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("missing column %d", col+1)
	}
	return strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
}

// Package export writes curves and results to CSV files and Excel workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/material"
)

const (
	summarySheet = "Summary"
	maxSheetName = 31
)

var summaryHeader = []interface{}{
	"Specimen", "Samples", "E (MPa)", "Offset", "Yield stress (MPa)", "Yield strain", "Yield found",
	"UTS (MPa)", "Strain at UTS", "A (MPa)", "n", "Necking strain",
	"Resilience (MJ/m³)", "Toughness (MJ/m³)", "Fracture strain",
}

var seriesHeader = []interface{}{"strain_e", "stress_e_MPa", "strain_t", "stress_t_MPa"}

// WriteCurveCSV writes an engineering curve as a two-column CSV file that
// dataset.Load reads back.
func WriteCurveCSV(path string, curve *dataset.Curve) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"strain_e", "stress_e_MPa"}); err != nil {
		return err
	}
	for i := range curve.Strain {
		record := []string{
			strconv.FormatFloat(curve.Strain[i], 'g', -1, 64),
			strconv.FormatFloat(curve.Stress[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// WriteWorkbook writes a Summary sheet followed by one sheet per result
// holding its engineering and true curves.
func WriteWorkbook(path string, results []*material.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, results); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for _, r := range results {
		name := uniqueSheetName(SheetName(r.Name), used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		if err := writeSeries(f, name, r); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, results []*material.Result) error {
	sw, err := f.NewStreamWriter(summarySheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", summaryHeader); err != nil {
		return err
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Name, len(r.Strain), r.YoungsModulus, r.Offset,
			r.Yield.Stress, r.Yield.Strain, r.Yield.Found,
			r.UTS, r.UTSStrain, nil, nil, nil,
			r.Resilience, r.Toughness, r.FractureStrain,
		}
		if r.PowerLawFitted {
			row[9], row[10], row[11] = r.PowerLaw.A, r.PowerLaw.N, r.NeckingStrain
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeSeries(f *excelize.File, sheet string, r *material.Result) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", seriesHeader); err != nil {
		return err
	}
	for i := range r.Strain {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Strain[i], r.Stress[i]}
		if i < len(r.TrueStrain) {
			row = append(row, r.TrueStrain[i], r.TrueStress[i])
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// SheetName makes a specimen name usable as a worksheet name.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(name, "'"))
	if name == "" {
		name = "Specimen"
	}
	return truncateRunes(name, maxSheetName)
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/diagram"
	"github.com/strenlab/tensile/internal/material"
	"github.com/strenlab/tensile/internal/report"
	"github.com/strenlab/tensile/internal/section"
	"github.com/strenlab/tensile/internal/store"
)

// slug turns a specimen name into a file name fragment.
func slug(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '_'
	}, name)
	if s == "" {
		return "specimen"
	}
	return s
}

// writeResults prints results in the format selected by --format.
func writeResults(out io.Writer, results []*material.Result) error {
	if outputFormat == "json" {
		summaries := make([]report.Summary, len(results))
		for i, r := range results {
			summaries[i] = report.NewSummary(r)
		}
		return report.WriteJSON(out, summaries...)
	}
	for _, r := range results {
		if err := report.WriteText(out, r); err != nil {
			return err
		}
	}
	return nil
}

// exportFigures writes the per-specimen figures into dir and returns the
// written file names. Figures without data (no true curve, no power-law fit)
// are skipped.
func exportFigures(dir string, data diagram.CurveDiagramData) ([]string, error) {
	base := filepath.Join(dir, "figure_"+slug(data.Name))
	figures := []struct {
		suffix string
		export func(diagram.CurveDiagramData, string) error
		skip   bool
	}{
		{"_engineering.png", diagram.ExportEngineeringDiagram, false},
		{"_eng_vs_true.png", diagram.ExportTrueDiagram, len(data.TrueStrain) == 0},
		{"_power_law.png", diagram.ExportPowerLawDiagram, !data.PowerLawFitted},
		{"_strain_energy.png", diagram.ExportEnergyDiagram, false},
	}

	var written []string
	for _, f := range figures {
		if f.skip {
			continue
		}
		name := base + f.suffix
		if err := f.export(data, name); err != nil {
			return written, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		written = append(written, name)
	}
	return written, nil
}

// archive saves one record per result. sources holds the input file of each
// result.
func archive(ctx context.Context, path string, results []*material.Result, sources []string) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for i, r := range results {
		if err := db.Save(ctx, store.NewRecord(sources[i], r)); err != nil {
			return err
		}
	}
	return nil
}

func summaryLines(r *material.Result) []string {
	lines := []string{
		fmt.Sprintf("E = %.0f GPa", r.YoungsModulus/1000),
		fmt.Sprintf("σy = %.1f MPa", r.Yield.Stress),
		fmt.Sprintf("σu = %.1f MPa at ε = %.3f", r.UTS, r.UTSStrain),
	}
	if r.PowerLawFitted {
		lines = append(lines, fmt.Sprintf("σₜ = %.0f·εₜ^%.3f", r.PowerLaw.A, r.PowerLaw.N))
	}
	return append(lines,
		fmt.Sprintf("Ur = %.2f MJ/m³", r.Resilience),
		fmt.Sprintf("Ut = %.1f MJ/m³", r.Toughness),
	)
}

// loadOptions builds the dataset options of the input flags. A section file,
// when given, supplies the original area instead of the diameter.
func loadOptions(name, format string, gauge, diameter float64, sectionFile string) (dataset.LoadOptions, error) {
	opts := dataset.LoadOptions{
		Name:        name,
		Format:      dataset.Format(format),
		GaugeLength: gauge,
		Diameter:    diameter,
	}
	if sectionFile == "" {
		return opts, nil
	}
	s, err := section.LoadFromFile(sectionFile)
	if err != nil {
		return opts, fmt.Errorf("section %s: %w", sectionFile, err)
	}
	if opts.Area, err = s.Area(); err != nil {
		return opts, fmt.Errorf("section %s: %w", sectionFile, err)
	}
	return opts, nil
}

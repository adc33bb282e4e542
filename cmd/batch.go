package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/config"
	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/diagram"
	"github.com/strenlab/tensile/internal/export"
	"github.com/strenlab/tensile/internal/material"
)

var (
	batchConfig string
	batchDB     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every specimen listed in a YAML or CUE file",
	Long: `Run the complete analysis for a set of specimens described in a
batch file and write, into the output directory:

  - <name>_stress_strain.csv for every specimen
  - figure_<name>_engineering.png, _eng_vs_true.png, _power_law.png and
    _strain_energy.png for every specimen (unless plots: false)
  - figure_comparison.png with all engineering curves
  - an Excel workbook with a summary sheet and one sheet per specimen

A specimen that fails is reported and skipped; the command exits with an
error after the remaining specimens are done.

Example batch.yaml:
  output: output
  defaults:
    gauge_length_mm: 25
  specimens:
    - name: CuNiSi
      label: CuNiSi (soft)
      file: data/CuNiSi.lis
    - name: CuSn12
      label: CuSn12 (medium)
      file: data/CuSn12.lis

Examples:
  tensile batch -c batch.yaml
  tensile batch -c batch.cue --db tensile.db --format json`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchConfig, "config", "c", "", "Batch file (.yaml or .cue) [required]")
	batchCmd.Flags().StringVar(&batchDB, "db", "", "Archive results in this SQLite database (overrides the batch file)")

	batchCmd.MarkFlagRequired("config")
}

type batchItem struct {
	specimen config.Specimen
	curve    *dataset.Curve
	result   *material.Result
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(batchConfig)
	if err != nil {
		return err
	}
	status := cmd.ErrOrStderr()

	var (
		items  []batchItem
		failed int
	)
	for _, specimen := range cfg.Specimens {
		slog.Info("analyzing specimen", "name", specimen.Name, "file", specimen.File)

		curve, err := dataset.Load(specimen.File, cfg.LoadOptions(specimen))
		if err != nil {
			slog.Error("loading failed", "specimen", specimen.Name, "error", err)
			failed++
			continue
		}
		result, err := material.Analyze(curve, cfg.AnalysisOptions(specimen))
		if err != nil {
			slog.Error("analysis failed", "specimen", specimen.Name, "error", err)
			failed++
			continue
		}
		items = append(items, batchItem{specimen: specimen, curve: curve, result: result})
	}

	results := make([]*material.Result, len(items))
	sources := make([]string, len(items))
	for i, it := range items {
		results[i] = it.result
		sources[i] = it.curve.Source
	}

	if err := writeResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if len(items) > 0 {
		for _, it := range items {
			name := filepath.Join(cfg.Output, slug(it.specimen.Name)+"_stress_strain.csv")
			if err := export.WriteCurveCSV(name, it.curve); err != nil {
				return fmt.Errorf("error writing CSV: %w", err)
			}
			fmt.Fprintf(status, "✓ %s\n", name)
		}

		if cfg.PlotsEnabled() {
			if err := batchFigures(cfg.Output, items, status); err != nil {
				return err
			}
		}

		if err := export.WriteWorkbook(cfg.Workbook, results); err != nil {
			return fmt.Errorf("error writing workbook: %w", err)
		}
		fmt.Fprintf(status, "✓ %s\n", cfg.Workbook)

		db := cfg.Database
		if batchDB != "" {
			db = batchDB
		}
		if db != "" {
			if err := archive(cmd.Context(), db, results, sources); err != nil {
				return fmt.Errorf("error archiving results: %w", err)
			}
			fmt.Fprintf(status, "✓ %d results archived in %s\n", len(results), db)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d specimens failed", failed, len(cfg.Specimens))
	}
	return nil
}

func batchFigures(dir string, items []batchItem, status io.Writer) error {
	series := make([]diagram.Series, 0, len(items))
	for _, it := range items {
		data := diagram.FromResult(it.result)
		data.Label = it.specimen.Label

		written, err := exportFigures(dir, data)
		if err != nil {
			return fmt.Errorf("error exporting figures of %s: %w", it.specimen.Name, err)
		}
		for _, name := range written {
			fmt.Fprintf(status, "✓ %s\n", name)
		}
		series = append(series, diagram.Series{Label: it.specimen.Label, X: it.result.Strain, Y: it.result.Stress})
	}

	name := filepath.Join(dir, "figure_comparison.png")
	if err := diagram.ExportComparisonDiagram("Material Comparison", series, name); err != nil {
		return fmt.Errorf("error exporting comparison figure: %w", err)
	}
	fmt.Fprintf(status, "✓ %s\n", name)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/diagram"
	"github.com/strenlab/tensile/internal/export"
	"github.com/strenlab/tensile/internal/lis"
	"github.com/strenlab/tensile/internal/material"
)

var (
	// Input
	analyzeFile        string
	analyzeInputFormat string
	analyzeName        string
	analyzeGauge       float64
	analyzeDiameter    float64
	analyzeSection     string
	analyzeSamples     int

	// Analysis settings
	analyzeElasticPoints int
	analyzeOffset        float64
	analyzeTrim          int
	analyzeStrict        bool

	// Output
	analyzeShowDiagram bool
	analyzePlotDir     string
	analyzeCSV         string
	analyzeXLSX        string
	analyzeDB          string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the stress-strain curve of one specimen",
	Long: `Compute the material properties of one tensile specimen:

  - Young's modulus E from a linear fit of the first samples
  - Offset yield stress (0.2% by default)
  - Ultimate tensile strength and strain at UTS
  - True stress-strain curve and power-law fit σₜ = A·εₜⁿ
  - Modulus of resilience and modulus of toughness

Examples:
  # Analyze a testing-machine export with the default 25 mm gauge length
  tensile analyze -f data/CuNiSi.lis

  # Load-displacement CSV of a 10 mm bar, with figures and a terminal chart
  tensile analyze -f bar.csv --diameter 10 --gauge 50 --diagram --plot output

  # JSON summary, archived in a database
  tensile analyze -f data/CuSn12.lis --format json --db tensile.db`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Input file (.lis or .csv) [required]")
	analyzeCmd.Flags().StringVar(&analyzeInputFormat, "input-format", "", "Input format (lis|csv), default from extension")
	analyzeCmd.Flags().StringVarP(&analyzeName, "name", "n", "", "Specimen name, default from file name")
	analyzeCmd.Flags().Float64VarP(&analyzeGauge, "gauge", "g", lis.DefaultGaugeLength, "Gauge length (mm)")
	analyzeCmd.Flags().Float64VarP(&analyzeDiameter, "diameter", "d", 0, "Specimen diameter (mm), for load columns")
	analyzeCmd.Flags().StringVar(&analyzeSection, "section", "", "Cross-section JSON file, for load columns")
	analyzeCmd.Flags().IntVar(&analyzeSamples, "samples", 0, "Analyze only the first N samples (0 = all)")

	// Analysis flags
	defaults := material.DefaultOptions()
	analyzeCmd.Flags().IntVar(&analyzeElasticPoints, "elastic-points", defaults.ElasticPoints, "Samples used for the modulus fit")
	analyzeCmd.Flags().Float64Var(&analyzeOffset, "offset", defaults.Offset, "Yield offset strain")
	analyzeCmd.Flags().IntVar(&analyzeTrim, "trim", defaults.PowerLawTrim, "Samples dropped at both ends of the power-law fit window")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "Fail when the power-law fit is impossible")

	// Output flags
	analyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII stress-strain diagram")
	analyzeCmd.Flags().StringVar(&analyzePlotDir, "plot", "", "Export figures (png) into this directory")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Write the engineering curve to a CSV file")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write results to an Excel workbook")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "Archive the result in a SQLite database")

	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	lo, err := loadOptions(analyzeName, analyzeInputFormat, analyzeGauge, analyzeDiameter, analyzeSection)
	if err != nil {
		return err
	}
	curve, err := dataset.Load(analyzeFile, lo)
	if err != nil {
		return err
	}
	if analyzeSamples > 0 {
		curve = curve.Truncate(analyzeSamples)
	}

	opts := material.Options{
		ElasticPoints:  analyzeElasticPoints,
		Offset:         analyzeOffset,
		PowerLawTrim:   analyzeTrim,
		StrictPowerLaw: analyzeStrict,
	}
	result, err := material.Analyze(curve, opts)
	if err != nil {
		return err
	}

	if err := writeResults(out, []*material.Result{result}); err != nil {
		return err
	}

	data := diagram.FromResult(result)
	if analyzeShowDiagram && outputFormat == "text" {
		fmt.Fprintln(out, diagram.DrawCurve(data, 70, 20))
		fmt.Fprintln(out, diagram.DrawSummaryBox(result.Name, summaryLines(result)))
	}

	// Secondary output goes to stderr so that JSON stays parseable
	status := cmd.ErrOrStderr()
	if analyzePlotDir != "" {
		written, err := exportFigures(analyzePlotDir, data)
		if err != nil {
			return fmt.Errorf("error exporting figures: %w", err)
		}
		for _, name := range written {
			fmt.Fprintf(status, "✓ Figure exported to: %s\n", name)
		}
	}
	if analyzeCSV != "" {
		if err := export.WriteCurveCSV(analyzeCSV, curve); err != nil {
			return fmt.Errorf("error writing CSV: %w", err)
		}
		fmt.Fprintf(status, "✓ Curve written to: %s\n", analyzeCSV)
	}
	if analyzeXLSX != "" {
		if err := export.WriteWorkbook(analyzeXLSX, []*material.Result{result}); err != nil {
			return fmt.Errorf("error writing workbook: %w", err)
		}
		fmt.Fprintf(status, "✓ Workbook written to: %s\n", analyzeXLSX)
	}
	if analyzeDB != "" {
		if err := archive(cmd.Context(), analyzeDB, []*material.Result{result}, []string{curve.Source}); err != nil {
			return fmt.Errorf("error archiving result: %w", err)
		}
		fmt.Fprintf(status, "✓ Result archived in: %s\n", analyzeDB)
	}
	return nil
}

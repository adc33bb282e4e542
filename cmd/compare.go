package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/diagram"
	"github.com/strenlab/tensile/internal/lis"
	"github.com/strenlab/tensile/internal/material"
)

var (
	compareOutput   string
	compareTitle    string
	compareGauge    float64
	compareDiameter float64
	compareSection  string
	compareTrue     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE...",
	Short: "Compare the stress-strain curves of several specimens",
	Long: `Analyze several specimens with the default settings, print their key
properties side by side and draw their curves on shared axes.

Examples:
  tensile compare data/CuNiSi.lis data/CuSn12.lis data/CuNi12Al3.lis -o comparison.png

  # True curves up to necking instead of engineering curves
  tensile compare a.lis b.lis --true -o true.svg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Export the comparison figure to file (png, svg, pdf)")
	compareCmd.Flags().StringVarP(&compareTitle, "title", "t", "Material Comparison", "Figure title")
	compareCmd.Flags().Float64VarP(&compareGauge, "gauge", "g", lis.DefaultGaugeLength, "Gauge length (mm)")
	compareCmd.Flags().Float64VarP(&compareDiameter, "diameter", "d", 0, "Specimen diameter (mm), for load columns")
	compareCmd.Flags().StringVar(&compareSection, "section", "", "Cross-section JSON file, for load columns")
	compareCmd.Flags().BoolVar(&compareTrue, "true", false, "Plot true curves up to UTS")
}

func runCompare(cmd *cobra.Command, args []string) error {
	lo, err := loadOptions("", "", compareGauge, compareDiameter, compareSection)
	if err != nil {
		return err
	}

	results := make([]*material.Result, 0, len(args))
	for _, path := range args {
		curve, err := dataset.Load(path, lo)
		if err != nil {
			return err
		}
		result, err := material.Analyze(curve, material.DefaultOptions())
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		if err := writeResults(out, results); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
		fmt.Fprintln(out, "     MATERIAL COMPARISON")
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Specimen\tE (GPa)\tσy (MPa)\tσu (MPa)\tεf\tn\tUt (MJ/m³)")
		fmt.Fprintln(w, "  ────────\t───────\t────────\t────────\t──\t─\t──────────")
		for _, r := range results {
			n := "-"
			if r.PowerLawFitted {
				n = fmt.Sprintf("%.3f", r.PowerLaw.N)
			}
			fmt.Fprintf(w, "  %s\t%.0f\t%.1f\t%.1f\t%.3f\t%s\t%.1f\n",
				r.Name, r.YoungsModulus/1000, r.Yield.Stress, r.UTS, r.FractureStrain, n, r.Toughness)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if compareOutput == "" {
		return nil
	}

	series := make([]diagram.Series, len(results))
	for i, r := range results {
		if compareTrue {
			series[i] = diagram.Series{Label: r.Name, X: r.TrueStrain, Y: r.TrueStress}
		} else {
			series[i] = diagram.Series{Label: r.Name, X: r.Strain, Y: r.Stress}
		}
	}
	if err := diagram.ExportComparisonDiagram(compareTitle, series, compareOutput); err != nil {
		return fmt.Errorf("error exporting diagram: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Diagram exported to: %s\n", compareOutput)
	return nil
}

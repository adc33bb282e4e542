package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/export"
	"github.com/strenlab/tensile/internal/lis"
)

var (
	convertFile        string
	convertOutput      string
	convertInputFormat string
	convertGauge       float64
	convertDiameter    float64
	convertSection     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a test file to an engineering strain/stress CSV",
	Long: `Read a .lis export or a load/displacement CSV and write the engineering
curve as a two-column CSV (strain_e,stress_e_MPa).

Examples:
  tensile convert -f data/CuNiSi.lis -o output/cunisi_stress_strain.csv
  tensile convert -f bar.csv --diameter 10 --gauge 50 -o bar_curve.csv`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFile, "file", "f", "", "Input file (.lis or .csv) [required]")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output CSV file [required]")
	convertCmd.Flags().StringVar(&convertInputFormat, "input-format", "", "Input format (lis|csv), default from extension")
	convertCmd.Flags().Float64VarP(&convertGauge, "gauge", "g", lis.DefaultGaugeLength, "Gauge length (mm)")
	convertCmd.Flags().Float64VarP(&convertDiameter, "diameter", "d", 0, "Specimen diameter (mm), for load columns")
	convertCmd.Flags().StringVar(&convertSection, "section", "", "Cross-section JSON file, for load columns")

	convertCmd.MarkFlagRequired("file")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	lo, err := loadOptions("", convertInputFormat, convertGauge, convertDiameter, convertSection)
	if err != nil {
		return err
	}
	curve, err := dataset.Load(convertFile, lo)
	if err != nil {
		return err
	}
	if err := export.WriteCurveCSV(convertOutput, curve); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d samples written to: %s\n", curve.Len(), convertOutput)
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/section"
)

var (
	areaDiameter      float64
	areaInnerDiameter float64
	areaWidth         float64
	areaThickness     float64
	areaSectionFile   string
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Original cross-sectional area of a specimen",
	Long: `Calculate the original cross-sectional area A₀ of a tensile specimen.

Supported sections:
  - Round bar:      A₀ = π·(d/2)²            (--diameter)
  - Tube:           A₀ = π·(D² - d²)/4       (--diameter, --inner-diameter)
  - Flat specimen:  A₀ = b·t                 (--width, --thickness)
  - Any polygon from a JSON file            (--section)

Examples:
  tensile area --diameter 10
  tensile area --width 12.5 --thickness 2
  tensile area --section specimen.json --format json`,
	RunE: runArea,
}

func init() {
	rootCmd.AddCommand(areaCmd)

	areaCmd.Flags().Float64VarP(&areaDiameter, "diameter", "d", 0, "Diameter, outer diameter for tubes (mm)")
	areaCmd.Flags().Float64Var(&areaInnerDiameter, "inner-diameter", 0, "Inner diameter of a tube (mm)")
	areaCmd.Flags().Float64VarP(&areaWidth, "width", "b", 0, "Width of a flat specimen (mm)")
	areaCmd.Flags().Float64VarP(&areaThickness, "thickness", "t", 0, "Thickness of a flat specimen (mm)")
	areaCmd.Flags().StringVarP(&areaSectionFile, "section", "s", "", "Cross-section JSON file")

	areaCmd.MarkFlagsMutuallyExclusive("section", "diameter")
	areaCmd.MarkFlagsMutuallyExclusive("section", "width")
	areaCmd.MarkFlagsMutuallyExclusive("diameter", "width")
	areaCmd.MarkFlagsOneRequired("diameter", "width", "section")
}

func runArea(cmd *cobra.Command, args []string) error {
	var (
		s   *section.Section
		err error
	)
	switch {
	case areaSectionFile != "":
		if s, err = section.LoadFromFile(areaSectionFile); err != nil {
			return err
		}
	case cmd.Flags().Changed("width"):
		s = section.Flat(areaWidth, areaThickness)
	case areaInnerDiameter > 0:
		s = section.Tube(areaDiameter, areaInnerDiameter)
	default:
		s = section.Round(areaDiameter)
	}

	props, err := s.CalculateProperties()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Section *section.Section `json:"section"`
			Area    float64          `json:"area_mm2"`
			Width   float64          `json:"width_mm"`
			Height  float64          `json:"height_mm"`
		}{s, props.Area, props.Width, props.Height})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Section:\t%s\n", s.Kind)
	switch s.Kind {
	case section.KindRound:
		fmt.Fprintf(w, "  Diameter (d):\t%.2f mm\n", s.Diameter)
	case section.KindTube:
		fmt.Fprintf(w, "  Outer diameter (D):\t%.2f mm\n", s.Diameter)
		fmt.Fprintf(w, "  Inner diameter (d):\t%.2f mm\n", s.InnerDiameter)
	case section.KindFlat:
		fmt.Fprintf(w, "  Width (b):\t%.2f mm\n", s.Width)
		fmt.Fprintf(w, "  Thickness (t):\t%.2f mm\n", s.Thickness)
	case section.KindPolygon:
		fmt.Fprintf(w, "  Vertices:\t%d\n", len(s.Vertices))
		fmt.Fprintf(w, "  Extent:\t%.2f × %.2f mm\n", props.Width, props.Height)
		fmt.Fprintf(w, "  Centroid:\t(%.2f, %.2f) mm\n", props.CentroidX, props.CentroidY)
	}
	fmt.Fprintf(w, "  Area (A₀):\t%.2f mm²\n", props.Area)
	return w.Flush()
}

// Package report renders analysis results as text tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/strenlab/tensile/internal/material"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

// PowerLawSummary is the fitted hardening law.
type PowerLawSummary struct {
	A             float64 `json:"a_mpa"`
	N             float64 `json:"n"`
	NeckingStrain float64 `json:"necking_strain"`
}

// Summary holds the scalar properties of one specimen.
type Summary struct {
	Name           string           `json:"name"`
	Samples        int              `json:"samples"`
	YoungsModulus  float64          `json:"youngs_modulus_mpa"`
	YieldStress    float64          `json:"yield_stress_mpa"`
	YieldStrain    float64          `json:"yield_strain"`
	YieldIndex     int              `json:"yield_index"`
	YieldFound     bool             `json:"yield_found"`
	UTS            float64          `json:"uts_mpa"`
	UTSStrain      float64          `json:"uts_strain"`
	UTSIndex       int              `json:"uts_index"`
	PowerLaw       *PowerLawSummary `json:"power_law,omitempty"`
	PowerLawError  string           `json:"power_law_error,omitempty"`
	Resilience     float64          `json:"resilience_mj_m3"`
	Toughness      float64          `json:"toughness_mj_m3"`
	FractureStrain float64          `json:"fracture_strain"`
}

// NewSummary extracts the scalar properties of a result.
func NewSummary(r *material.Result) Summary {
	s := Summary{
		Name:           r.Name,
		Samples:        len(r.Strain),
		YoungsModulus:  r.YoungsModulus,
		YieldStress:    r.Yield.Stress,
		YieldStrain:    r.Yield.Strain,
		YieldIndex:     r.Yield.Index,
		YieldFound:     r.Yield.Found,
		UTS:            r.UTS,
		UTSStrain:      r.UTSStrain,
		UTSIndex:       r.UTSIndex,
		PowerLawError:  r.PowerLawError,
		Resilience:     r.Resilience,
		Toughness:      r.Toughness,
		FractureStrain: r.FractureStrain,
	}
	if r.PowerLawFitted {
		s.PowerLaw = &PowerLawSummary{A: r.PowerLaw.A, N: r.PowerLaw.N, NeckingStrain: r.NeckingStrain}
	}
	return s
}

// WriteJSON writes the summaries as an indented JSON document.
func WriteJSON(w io.Writer, summaries ...Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Specimens []Summary `json:"specimens"`
	}{Specimens: summaries})
}

// WriteText prints the result tables of one specimen.
func WriteText(w io.Writer, r *material.Result) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "     TENSILE TEST ANALYSIS - %s\n", r.Name)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w)

	section(w, "DATA:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Samples:\t%d\n", len(r.Strain))
	fmt.Fprintf(tw, "  Fracture strain:\t%.1f%%\n", r.FractureStrain*100)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "ELASTIC PROPERTIES:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Young's Modulus E:\t%.0f GPa\n", r.YoungsModulus/1000)
	fmt.Fprintf(tw, "  Yield Stress σy (%.1f%% offset):\t%.1f MPa", r.Offset*100, r.Yield.Stress)
	if !r.Yield.Found {
		fmt.Fprint(tw, " ⚠ (no crossing, last sample)")
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "  Yield Strain:\t%.4f\n", r.Yield.Strain)
	fmt.Fprintf(tw, "  Modulus of Resilience:\t%.2f MJ/m³\n", r.Resilience)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "STRENGTH:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Ultimate Tensile Strength σu:\t%.1f MPa\n", r.UTS)
	fmt.Fprintf(tw, "  Strain at UTS:\t%.1f%%\n", r.UTSStrain*100)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "HARDENING:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if r.PowerLawFitted {
		fmt.Fprintf(tw, "  Power law:\tσₜ = %.0f·εₜ^%.3f\n", r.PowerLaw.A, r.PowerLaw.N)
		fmt.Fprintf(tw, "  Necking strain (Considère):\t%.3f\n", r.NeckingStrain)
	} else {
		fmt.Fprintf(tw, "  Power law:\tnot fitted ⚠ (%s)\n", r.PowerLawError)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "ENERGY:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Modulus of Toughness:\t%.1f MJ/m³\n", r.Toughness)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, lightRule)
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/version"
)

var (
	verbose      bool
	outputFormat string
)

var validFormats = []string{"text", "json"}

var rootCmd = &cobra.Command{
	Use:   "tensile",
	Short: "Tensile test analysis tool",
	Long: `tensile - stress-strain analysis of uniaxial tensile tests

A CLI tool that turns raw tensile test recordings into material
properties and figures.

This tool computes:
  - Young's modulus from the initial elastic region
  - 0.2% offset yield strength and ultimate tensile strength
  - True stress and true strain up to necking
  - Hollomon power-law hardening (σₜ = A·εₜⁿ)
  - Modulus of resilience and modulus of toughness

Input files are testing-machine .lis exports or strain/stress CSV files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(validFormats, outputFormat) {
			return fmt.Errorf("invalid format %q: must be one of %v", outputFormat, validFormats)
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   tensile v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Tensile Test Stress-Strain Analysis                     ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Elastic modulus, offset yield and ultimate strength")
		fmt.Fprintln(out, "    • True stress-strain curves and power-law hardening fit")
		fmt.Fprintln(out, "    • Resilience and toughness from strain energy")
		fmt.Fprintln(out, "    • Batch runs, comparison figures, Excel and SQLite output")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'tensile --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text|json)")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/report"
	"github.com/strenlab/tensile/internal/store"
)

var (
	historyDB   string
	historyName string
	historyID   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived analysis results",
	Long: `Show results archived with --db, newest first.

Examples:
  tensile history --db tensile.db
  tensile history --db tensile.db --name CuNiSi
  tensile history --db tensile.db --id 0192f1c4-... --format json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "db", "", "SQLite database [required]")
	historyCmd.Flags().StringVarP(&historyName, "name", "n", "", "Only show this specimen")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Show a single record")

	historyCmd.MarkFlagRequired("db")
}

type historyEntry struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	Summary   report.Summary `json:"summary"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(historyDB)
	if err != nil {
		return err
	}
	defer db.Close()

	var records []store.Record
	if historyID != "" {
		rec, err := db.Get(cmd.Context(), historyID)
		if err != nil {
			return err
		}
		records = []store.Record{rec}
	} else {
		records, err = db.List(cmd.Context(), historyName)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		entries := make([]historyEntry, len(records))
		for i, rec := range records {
			entries[i] = historyEntry{ID: rec.ID, Source: rec.Source, CreatedAt: rec.CreatedAt, Summary: rec.Summary}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No archived results.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tSpecimen\tE (GPa)\tσy (MPa)\tσu (MPa)\tUt (MJ/m³)\tSource")
	for _, rec := range records {
		s := rec.Summary
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
			rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), s.Name,
			s.YoungsModulus/1000, s.YieldStress, s.UTS, s.Toughness, rec.Source)
	}
	return w.Flush()
}

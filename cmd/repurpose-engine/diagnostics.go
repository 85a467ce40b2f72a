// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics [drug]",
	Short: "Report record counts per source and demo coverage for a drug",
	Long: `Diagnostics queries each configured source without extracting and
reports how many records came back, plus whether curated demo data exists for
the drug. Useful for checking a fixtures file or corpus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagnostics,
}

func runDiagnostics(cmd *cobra.Command, args []string) error {
	drug := "metformin"
	if len(args) == 1 {
		drug = args[0]
	}
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.close()

	max, _ := cmd.Flags().GetInt("max-records")
	d := eng.pipeline.Diagnose(cmd.Context(), drug, max)

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	fmt.Fprintf(w, "drug:        %s\n", d.Query)
	fmt.Fprintf(w, "literature:  %d\n", d.LiteratureCount)
	fmt.Fprintf(w, "trials:      %d\n", d.TrialCount)
	fmt.Fprintf(w, "demo data:   %t\n", d.HasDemo)
	return nil
}

func init() {
	diagnosticsCmd.Flags().Int("max-records", 10, "maximum records fetched per source")
	diagnosticsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(diagnosticsCmd)
}

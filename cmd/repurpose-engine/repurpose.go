// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
	"github.com/pdiddy/repurpose-engine/internal/report"
)

var repurposeCmd = &cobra.Command{
	Use:   "repurpose <drug>",
	Short: "Rank diseases a drug may be repurposed for",
	Long: `Repurpose fetches literature and trial records mentioning the drug,
extracts disease mentions, and ranks each disease by a confidence score built
from trial count, phase, and publication count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, pipeline.ModeDisease, "drug", 0)
	},
}

// runQuery executes one pipeline run for the command's flags and writes
// the rendered result to the command's output. A zero defaultMax uses the
// configured pipeline.max_records.
func runQuery(cmd *cobra.Command, args []string, mode pipeline.Mode, what string, defaultMax int) error {
	query, err := requireQuery(args, what)
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.close()

	if defaultMax == 0 {
		defaultMax = eng.cfg.Pipeline.MaxRecords
	}
	req := pipeline.Request{
		Query:      query,
		Mode:       mode,
		MaxRecords: maxRecordsFlag(cmd, defaultMax),
	}
	if f := cmd.Flags().Lookup("advisory"); f != nil {
		req.WithAdvisory, _ = cmd.Flags().GetBool("advisory")
	}
	if f := cmd.Flags().Lookup("min-phase"); f != nil {
		raw, _ := cmd.Flags().GetString("min-phase")
		if req.MinPhase, err = pipeline.ParseMinPhase(raw); err != nil {
			return err
		}
		req.MinYear, _ = cmd.Flags().GetInt("min-year")
	}

	res, err := eng.pipeline.Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return report.Write(res, format, cmd.OutOrStdout())
}

func addOutputFlags(cmd *cobra.Command, defaultMax int) {
	cmd.Flags().Int("max-records", defaultMax, "maximum records fetched per source")
	cmd.Flags().String("format", report.FormatText, "output format: text, json, or yaml")
}

func init() {
	addOutputFlags(repurposeCmd, pipeline.DefaultMaxRecords)
	repurposeCmd.Flags().Bool("advisory", false, "attach market, patent, and regulatory estimates")

	rootCmd.AddCommand(repurposeCmd)
}

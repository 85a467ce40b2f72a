// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
)

var treatCmd = &cobra.Command{
	Use:   "treat <condition>",
	Short: "Rank medicines with evidence for a condition",
	Long: `Treat fetches records mentioning the condition and ranks candidate
medicines. Trial interventions are used when any trial names one; otherwise
drug-like names are pulled from the literature.

Trials can be narrowed by minimum phase and by the latest of their start and
completion years before extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, pipeline.ModeDrug, "condition", 0)
	},
}

func init() {
	addOutputFlags(treatCmd, pipeline.DefaultMaxRecords)
	treatCmd.Flags().String("min-phase", "any", "minimum trial phase: "+strings.Join(pipeline.MinPhaseOptions, ", "))
	treatCmd.Flags().Int("min-year", 0, "drop trials whose latest start or completion year is earlier")
	treatCmd.Flags().Bool("advisory", false, "attach market, patent, and regulatory estimates")

	rootCmd.AddCommand(treatCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
)

const explorerMaxRecords = 12

var explorerCmd = &cobra.Command{
	Use:   "explorer <condition>",
	Short: "Rank medicines for a condition with market and patent estimates",
	Long: `Explorer is treat with advisory data always attached: market size and
unmet need for the condition, patent risk for each medicine, and a suggested
regulatory pathway. Advisory data never changes the ranking.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, pipeline.ModeDrug, "condition", explorerMaxRecords)
	},
}

func init() {
	addOutputFlags(explorerCmd, explorerMaxRecords)
	explorerCmd.Flags().Bool("advisory", true, "attach market, patent, and regulatory estimates")
	_ = explorerCmd.Flags().MarkHidden("advisory")

	rootCmd.AddCommand(explorerCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/source"
)

const defaultCorpusPath = "data/corpus.db"

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the local SQLite record corpus",
	Long: `Corpus manages a local SQLite database of literature and trial records.
Import fixtures files into it, then point --corpus (or sources.corpus_path)
at it to run queries against the stored records.`,
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import fixtures files into the corpus",
	Long: `Import reads YAML or JSON fixtures files with "literature" and "trials"
lists and upserts every record by ID. Re-importing a file refreshes it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	c, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	var total source.ImportSummary
	for _, path := range args {
		s, err := c.Import(cmd.Context(), path, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		total.Literature += s.Literature
		total.Trials += s.Trials
	}
	if len(args) > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nimported %d literature, %d trials from %d files\n",
			total.Literature, total.Trials, len(args))
	}
	return nil
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show how many records the corpus holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCorpus(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "literature: %d\ntrials:     %d\n", stats.Literature, stats.Trials)
		return nil
	},
}

// openCorpus opens the configured corpus, defaulting to data/corpus.db.
func openCorpus(cmd *cobra.Command) (*source.Corpus, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	path := cfg.Sources.CorpusPath
	if path == "" {
		path = defaultCorpusPath
	}
	return source.OpenCorpus(path)
}

func init() {
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusListCmd)

	rootCmd.AddCommand(corpusCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/repurpose-engine/internal/advisory"
	"github.com/pdiddy/repurpose-engine/internal/config"
	"github.com/pdiddy/repurpose-engine/internal/demo"
	"github.com/pdiddy/repurpose-engine/internal/extract"
	"github.com/pdiddy/repurpose-engine/internal/logging"
	"github.com/pdiddy/repurpose-engine/internal/pipeline"
	"github.com/pdiddy/repurpose-engine/internal/source"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// engine bundles what a command needs to execute pipeline runs.
type engine struct {
	cfg      types.Config
	logger   *logrus.Logger
	guard    *source.Guard
	pipeline *pipeline.Pipeline
	close    func() error
}

// loadConfig reads the merged configuration, honouring --no-demo.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, err
	}
	if noDemo, _ := cmd.Flags().GetBool("no-demo"); noDemo {
		cfg.Demo.Enabled = false
	}
	return cfg, nil
}

// newEngine opens the configured record source and assembles a pipeline
// around it. Callers must invoke close when done.
func newEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging, os.Stderr)

	vocab := extract.DefaultVocabulary()
	if cfg.Pipeline.Vocabulary != "" {
		vocab, err = extract.LoadVocabulary(cfg.Pipeline.Vocabulary)
		if err != nil {
			return nil, err
		}
	}

	fetcher, closeFn, err := source.Open(cfg.Sources)
	if err != nil {
		return nil, err
	}
	guard := source.NewGuard(fetcher, cfg.Sources, logger)

	var catalog demo.Catalog = demo.Curated{}
	if !cfg.Demo.Enabled {
		catalog = demo.Disabled{}
	}

	logger.WithFields(logrus.Fields{
		"fixtures": cfg.Sources.Fixtures,
		"corpus":   cfg.Sources.CorpusPath,
		"demo":     cfg.Demo.Enabled,
	}).Debug("pipeline configured")

	return &engine{
		cfg:    cfg,
		logger: logger,
		guard:  guard,
		pipeline: &pipeline.Pipeline{
			Sources:    guard,
			Recognizer: extract.NewHeuristic(vocab),
			Demo:       catalog,
			Advisor:    advisory.Static{},
			Logger:     logger,
		},
		close: closeFn,
	}, nil
}

// maxRecordsFlag returns --max-records when set, else fallback.
func maxRecordsFlag(cmd *cobra.Command, fallback int) int {
	if cmd.Flags().Changed("max-records") {
		n, _ := cmd.Flags().GetInt("max-records")
		return n
	}
	return fallback
}

func requireQuery(args []string, what string) (string, error) {
	if len(args) == 0 || len([]rune(args[0])) < 2 {
		return "", fmt.Errorf("%s must be at least 2 characters", what)
	}
	return args[0], nil
}

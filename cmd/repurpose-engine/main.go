// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the repurpose-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the repurpose-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "repurpose-engine",
	Short: "Rank drug repurposing candidates from literature and trial records",
	Long: `repurpose-engine turns literature abstracts and clinical-trial records into a
ranked list of drug and disease associations, each with a confidence score and
a short rationale.

Records come from a fixtures file or a local SQLite corpus built with
"corpus import". When nothing can be extracted for a query, curated demo data
is used instead. The same pipeline is served over HTTP by "serve".`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./repurpose-engine.yaml or ~/.config/repurpose-engine/repurpose-engine.yaml)")
	rootCmd.PersistentFlags().String("fixtures", "", "YAML or JSON file of literature and trial records")
	rootCmd.PersistentFlags().String("corpus", "", "SQLite corpus path (takes precedence over --fixtures)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-demo", false, "disable the curated demo fallback")

	_ = viper.BindPFlag("sources.fixtures", rootCmd.PersistentFlags().Lookup("fixtures"))
	_ = viper.BindPFlag("sources.corpus_path", rootCmd.PersistentFlags().Lookup("corpus"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("repurpose-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "repurpose-engine"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

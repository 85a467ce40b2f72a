//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	sampleFixtures = "fixtures/records.yaml"
	sampleCorpus   = "data/corpus.db"
)

func bin() string { return filepath.Join(binDir, binName) }

// Demo runs every query command against the sample fixtures.
func Demo() error {
	mg.Deps(Build)
	runs := [][]string{
		{"repurpose", "metformin", "--fixtures", sampleFixtures},
		{"treat", "migraine", "--fixtures", sampleFixtures, "--min-phase", "phase 2"},
		{"explorer", "asthma"},
		{"diagnostics", "metformin", "--fixtures", sampleFixtures},
	}
	for _, args := range runs {
		if err := sh.RunV(bin(), args...); err != nil {
			return err
		}
	}
	return nil
}

// Corpus imports the sample fixtures into data/corpus.db and lists it.
func Corpus() error {
	mg.Deps(Build, Init)
	if err := sh.RunV(bin(), "corpus", "import", sampleFixtures, "--corpus", sampleCorpus); err != nil {
		return err
	}
	return sh.RunV(bin(), "corpus", "list", "--corpus", sampleCorpus)
}

// Serve builds and starts the HTTP server with the sample fixtures.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(bin(), "serve", "--fixtures", sampleFixtures)
}

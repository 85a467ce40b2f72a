// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source provides literature and trial records to the pipeline.
// Concrete sources may fail; Guard sits at the boundary and converts every
// failure into an empty result so the core never sees an error.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Source names used for logging, breakers, and metrics labels.
const (
	NameLiterature = "literature"
	NameTrials     = "trials"
)

// LiteratureFetcher retrieves literature records relevant to a query.
// max caps the number of records; zero means no cap.
type LiteratureFetcher interface {
	FetchLiterature(ctx context.Context, query string, max int) ([]types.LiteratureRecord, error)
}

// TrialFetcher retrieves clinical-trial records relevant to a query.
type TrialFetcher interface {
	FetchTrials(ctx context.Context, query string, max int) ([]types.TrialRecord, error)
}

// Fetcher is a source of both record kinds.
type Fetcher interface {
	LiteratureFetcher
	TrialFetcher
}

// None is a Fetcher with no records. Runs against it always fall back to
// curated demo data.
type None struct{}

// FetchLiterature implements LiteratureFetcher.
func (None) FetchLiterature(context.Context, string, int) ([]types.LiteratureRecord, error) {
	return nil, nil
}

// FetchTrials implements TrialFetcher.
func (None) FetchTrials(context.Context, string, int) ([]types.TrialRecord, error) {
	return nil, nil
}

// Open selects a Fetcher from configuration. A corpus path wins over a
// fixtures file; with neither set the result is None. The returned close
// function releases any held resources.
func Open(cfg types.SourcesConfig) (Fetcher, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.CorpusPath != "":
		c, err := OpenCorpus(cfg.CorpusPath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening corpus: %w", err)
		}
		return c, c.Close, nil
	case cfg.Fixtures != "":
		f, err := LoadFile(cfg.Fixtures)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil
	default:
		return None{}, noop, nil
	}
}

// matchesLiterature reports whether q occurs in the record's title or
// abstract, ignoring case.
func matchesLiterature(r types.LiteratureRecord, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Abstract), q)
}

// matchesTrial reports whether q occurs in the trial title, a condition,
// or an intervention name, ignoring case.
func matchesTrial(r types.TrialRecord, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, s := range r.Conditions {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, s := range r.Interventions {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

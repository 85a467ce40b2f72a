// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Fixtures is the on-disk record format shared by FileSource and
// Corpus.Import. JSON files parse as well since JSON is valid YAML.
type Fixtures struct {
	Literature []types.LiteratureRecord `json:"literature" yaml:"literature"`
	Trials     []types.TrialRecord      `json:"trials" yaml:"trials"`
}

// ReadFixtures parses a fixtures file. Records without a source ID get one
// derived from their ID.
func ReadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("reading fixture file: %w", err)
	}
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("parsing fixture file %s: %w", path, err)
	}
	for i := range fx.Literature {
		if fx.Literature[i].SourceID == "" && fx.Literature[i].ID != "" {
			fx.Literature[i].SourceID = types.LiteratureSourceID(fx.Literature[i].ID)
		}
	}
	for i := range fx.Trials {
		if fx.Trials[i].SourceID == "" && fx.Trials[i].ID != "" {
			fx.Trials[i].SourceID = types.TrialSourceID(fx.Trials[i].ID)
		}
	}
	return fx, nil
}

// FileSource serves records held in memory from a fixtures file.
type FileSource struct {
	fx Fixtures
}

// LoadFile reads path into a FileSource.
func LoadFile(path string) (*FileSource, error) {
	fx, err := ReadFixtures(path)
	if err != nil {
		return nil, err
	}
	return NewFileSource(fx), nil
}

// NewFileSource wraps already-parsed fixtures.
func NewFileSource(fx Fixtures) *FileSource {
	return &FileSource{fx: fx}
}

// FetchLiterature returns matching literature in file order.
func (f *FileSource) FetchLiterature(ctx context.Context, query string, max int) ([]types.LiteratureRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []types.LiteratureRecord
	for _, r := range f.fx.Literature {
		if max > 0 && len(out) >= max {
			break
		}
		if matchesLiterature(r, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FetchTrials returns matching trials in file order.
func (f *FileSource) FetchTrials(ctx context.Context, query string, max int) ([]types.TrialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []types.TrialRecord
	for _, r := range f.fx.Trials {
		if max > 0 && len(out) >= max {
			break
		}
		if matchesTrial(r, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

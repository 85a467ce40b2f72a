// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one repurposing request end to end: fetch records
// through the guarded boundary, filter trials, extract and aggregate
// evidence, fall back to curated data when nothing is found, then score,
// summarize, rank, and optionally attach advisory enrichment.
//
// All state is request-scoped; a Pipeline value may serve concurrent runs
// as long as its collaborators are safe for concurrent use.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/repurpose-engine/internal/advisory"
	"github.com/pdiddy/repurpose-engine/internal/demo"
	"github.com/pdiddy/repurpose-engine/internal/evidence"
	"github.com/pdiddy/repurpose-engine/internal/extract"
	"github.com/pdiddy/repurpose-engine/internal/score"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Mode selects which side of the association the query names.
type Mode string

const (
	// ModeDisease takes a drug query and surfaces candidate diseases.
	ModeDisease Mode = "disease"

	// ModeDrug takes a condition query and surfaces candidate drugs.
	ModeDrug Mode = "drug"
)

// DefaultMaxRecords is the per-source record cap when a request sets none.
const DefaultMaxRecords = 15

// Sources supplies records without ever failing. source.Guard implements it.
type Sources interface {
	Literature(ctx context.Context, query string, max int) []types.LiteratureRecord
	Trials(ctx context.Context, query string, max int) []types.TrialRecord
}

// Observer receives a notification after every completed run.
type Observer interface {
	ObserveRun(mode string, usedDemo bool)
}

// Pipeline wires the collaborators for a run. Nil fields fall back to
// no records, the default heuristic recognizer, no demo data, and the
// static advisor respectively.
type Pipeline struct {
	Sources    Sources
	Recognizer extract.Recognizer
	Demo       demo.Catalog
	Advisor    advisory.Advisor
	Logger     *logrus.Logger
	Observer   Observer
}

// Request describes one run.
type Request struct {
	// Query is the drug (disease mode) or condition (drug mode).
	Query string

	Mode Mode

	// MaxRecords caps records per source; zero uses DefaultMaxRecords.
	MaxRecords int

	// MinPhase is a PhaseRank threshold for trials; zero keeps all.
	MinPhase int

	// MinYear drops trials whose latest start/completion year is earlier.
	MinYear int

	// WithAdvisory attaches market, patent, and regulatory data.
	WithAdvisory bool
}

// Result is a ranked run outcome.
type Result struct {
	Query           string               `json:"query" yaml:"query"`
	Mode            Mode                 `json:"mode" yaml:"mode"`
	Entities        []types.ScoredEntity `json:"entities" yaml:"entities"`
	UsedDemo        bool                 `json:"used_demo" yaml:"used_demo"`
	LiteratureCount int                  `json:"literature_count" yaml:"literature_count"`
	TrialCount      int                  `json:"trial_count" yaml:"trial_count"`
}

// Run executes req. The only error returned is the context's, when it is
// already done before fetching starts.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.Mode == "" {
		req.Mode = ModeDisease
	}
	max := req.MaxRecords
	if max <= 0 {
		max = DefaultMaxRecords
	}

	var (
		lits   []types.LiteratureRecord
		trials []types.TrialRecord
	)
	if p.Sources != nil {
		lits = p.Sources.Literature(ctx, req.Query, max)
		trials = p.Sources.Trials(ctx, req.Query, max)
	}
	trials = FilterTrials(trials, req.MinPhase, req.MinYear)

	found := p.extract(req.Mode, trials, lits)
	usedDemo := false
	if found.Empty() {
		found = p.fallback(req.Mode, req.Query)
		usedDemo = !found.Empty()
		entry := p.logger().WithFields(logrus.Fields{
			"query": req.Query,
			"mode":  string(req.Mode),
		})
		if usedDemo {
			entry.WithFields(logrus.Fields{
				"entities":   found.Len(),
				"trials":     found.CountKind(types.EvidenceTrial),
				"literature": found.CountKind(types.EvidenceLiterature),
			}).Info("no evidence extracted, using curated fallback")
		} else {
			entry.Info("no evidence extracted and no curated fallback available")
		}
	}

	entities := make([]types.ScoredEntity, 0, found.Len())
	found.Each(func(name string, items []types.EvidenceItem) {
		drug, disease := req.Query, name
		if req.Mode == ModeDrug {
			drug, disease = name, req.Query
		}
		e := score.Entity(name, req.Query, drug, disease, items)
		if req.WithAdvisory {
			e.Advisory = advisory.Bundle(p.advisor(), drug, disease)
		}
		entities = append(entities, e)
	})
	score.Rank(entities)

	if p.Observer != nil {
		p.Observer.ObserveRun(string(req.Mode), usedDemo)
	}

	return Result{
		Query:           req.Query,
		Mode:            req.Mode,
		Entities:        entities,
		UsedDemo:        usedDemo,
		LiteratureCount: len(lits),
		TrialCount:      len(trials),
	}, nil
}

// Diagnostics reports what the sources return for a drug query and
// whether curated fallback data exists for it.
type Diagnostics struct {
	Query           string `json:"drug" yaml:"drug"`
	LiteratureCount int    `json:"pubmed_count" yaml:"pubmed_count"`
	TrialCount      int    `json:"trials_count" yaml:"trials_count"`
	HasDemo         bool   `json:"has_demo" yaml:"has_demo"`
}

// Diagnose fetches from each source without extracting.
func (p *Pipeline) Diagnose(ctx context.Context, query string, max int) Diagnostics {
	d := Diagnostics{Query: query}
	if p.Sources != nil {
		d.LiteratureCount = len(p.Sources.Literature(ctx, query, max))
		d.TrialCount = len(p.Sources.Trials(ctx, query, max))
	}
	d.HasDemo = !p.catalog().Evidence(query).Empty()
	return d
}

func (p *Pipeline) extract(mode Mode, trials []types.TrialRecord, lits []types.LiteratureRecord) *evidence.Map {
	r := p.Recognizer
	if r == nil {
		r = extract.NewHeuristic(extract.DefaultVocabulary())
	}
	if mode == ModeDrug {
		return r.RecognizeDrugs(trials, lits)
	}
	return r.RecognizeDiseases(trials, lits)
}

func (p *Pipeline) fallback(mode Mode, query string) *evidence.Map {
	if mode == ModeDrug {
		return p.catalog().Treatments(query)
	}
	return p.catalog().Evidence(query)
}

func (p *Pipeline) catalog() demo.Catalog {
	if p.Demo == nil {
		return demo.Disabled{}
	}
	return p.Demo
}

func (p *Pipeline) advisor() advisory.Advisor {
	if p.Advisor == nil {
		return advisory.Static{}
	}
	return p.Advisor
}

func (p *Pipeline) logger() *logrus.Logger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

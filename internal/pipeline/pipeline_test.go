// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/repurpose-engine/internal/advisory"
	"github.com/pdiddy/repurpose-engine/internal/demo"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

type fixedSources struct {
	lits      []types.LiteratureRecord
	trials    []types.TrialRecord
	gotQuery  string
	gotMax    int
	callCount int
}

func (f *fixedSources) Literature(_ context.Context, query string, max int) []types.LiteratureRecord {
	f.gotQuery, f.gotMax = query, max
	f.callCount++
	return f.lits
}

func (f *fixedSources) Trials(_ context.Context, query string, max int) []types.TrialRecord {
	f.callCount++
	return f.trials
}

type runRecorder struct {
	modes []string
	demos []bool
}

func (r *runRecorder) ObserveRun(mode string, usedDemo bool) {
	r.modes = append(r.modes, mode)
	r.demos = append(r.demos, usedDemo)
}

func newPipeline(src Sources) *Pipeline {
	logger, _ := logtest.NewNullLogger()
	return &Pipeline{Sources: src, Demo: demo.Curated{}, Logger: logger}
}

func TestRunDiseaseModeBreastCancer(t *testing.T) {
	src := &fixedSources{trials: []types.TrialRecord{{
		Title:      "Metformin in HER2- breast cancer",
		Conditions: []string{"Breast Cancer"},
		Phase:      "Phase 2",
		Status:     "Recruiting",
		SourceID:   "NCT:1",
	}}}

	res, err := newPipeline(src).Run(context.Background(), Request{Query: "metformin", Mode: ModeDisease})
	require.NoError(t, err)
	assert.False(t, res.UsedDemo)
	assert.Equal(t, DefaultMaxRecords, src.gotMax)
	require.Len(t, res.Entities, 1)

	e := res.Entities[0]
	assert.Equal(t, "Breast Cancer", e.Name)
	assert.Equal(t, "metformin", e.Counterpart)
	assert.InDelta(t, 0.27, e.Confidence, 1e-9)
	assert.Equal(t, []string{"NCT:1"}, e.Sources)
	assert.Equal(t,
		"ClinicalTrials.gov shows 1 trial(s) for metformin in Breast Cancer (phases: Phase 2, Recruiting:1).",
		e.Summary)
	assert.Nil(t, e.Advisory)
}

func TestRunDrugModeUsesEntityAsDrug(t *testing.T) {
	src := &fixedSources{lits: []types.LiteratureRecord{{
		Title:    "Adalimumab in refractory migraine",
		Abstract: "Adalimumab reduced attacks.",
		SourceID: "PMID:9",
	}}}

	res, err := newPipeline(src).Run(context.Background(), Request{Query: "migraine", Mode: ModeDrug, MaxRecords: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, src.gotMax)
	require.Len(t, res.Entities, 1)
	e := res.Entities[0]
	assert.Equal(t, "Adalimumab", e.Name)
	assert.Equal(t, "migraine", e.Counterpart)
	assert.Contains(t, e.Summary, "activity of Adalimumab in migraine")
}

func TestRunFallsBackToDemo(t *testing.T) {
	rec := &runRecorder{}
	logger, hook := logtest.NewNullLogger()
	p := &Pipeline{Sources: &fixedSources{}, Demo: demo.Curated{}, Logger: logger, Observer: rec}

	res, err := p.Run(context.Background(), Request{Query: "migraine", Mode: ModeDrug})
	require.NoError(t, err)
	assert.True(t, res.UsedDemo)
	require.Len(t, res.Entities, 3)

	// Two phase-3 trials tie at 0.35 and keep table order; literature trails.
	assert.Equal(t, "Sumatriptan", res.Entities[0].Name)
	assert.Equal(t, "Topiramate", res.Entities[1].Name)
	assert.Equal(t, "Propranolol", res.Entities[2].Name)
	assert.Equal(t, []string{"drug"}, rec.modes)
	assert.Equal(t, []bool{true}, rec.demos)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "no evidence extracted, using curated fallback", last.Message)
	assert.Equal(t, 3, last.Data["entities"])
	assert.Equal(t, 2, last.Data["trials"])
	assert.Equal(t, 1, last.Data["literature"])
}

func TestRunFallbackWhenRecordsYieldNothing(t *testing.T) {
	src := &fixedSources{lits: []types.LiteratureRecord{{Title: "no terms here", SourceID: "PMID:1"}}}
	res, err := newPipeline(src).Run(context.Background(), Request{Query: "Aspirin", Mode: ModeDisease})
	require.NoError(t, err)
	assert.True(t, res.UsedDemo)
	assert.Equal(t, 1, res.LiteratureCount)
	assert.Len(t, res.Entities, 3)
}

func TestRunUnknownQueryIsEmpty(t *testing.T) {
	res, err := newPipeline(&fixedSources{}).Run(context.Background(), Request{Query: "unobtainium"})
	require.NoError(t, err)
	assert.Equal(t, ModeDisease, res.Mode)
	assert.False(t, res.UsedDemo)
	assert.NotNil(t, res.Entities)
	assert.Empty(t, res.Entities)
}

func TestRunWithoutDemoCatalog(t *testing.T) {
	for _, catalog := range []demo.Catalog{nil, demo.Disabled{}} {
		logger, hook := logtest.NewNullLogger()
		p := &Pipeline{Sources: &fixedSources{}, Demo: catalog, Logger: logger}
		res, err := p.Run(context.Background(), Request{Query: "migraine", Mode: ModeDrug})
		require.NoError(t, err)
		assert.Empty(t, res.Entities)
		assert.False(t, res.UsedDemo)
		for _, e := range hook.AllEntries() {
			assert.NotContains(t, e.Message, "using curated fallback")
		}
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "no evidence extracted and no curated fallback available", hook.LastEntry().Message)
	}
}

func TestRunNilSources(t *testing.T) {
	p := &Pipeline{Demo: demo.Curated{}}
	res, err := p.Run(context.Background(), Request{Query: "metformin"})
	require.NoError(t, err)
	assert.True(t, res.UsedDemo)
	assert.NotEmpty(t, res.Entities)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fixedSources{}
	_, err := newPipeline(src).Run(ctx, Request{Query: "metformin"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.callCount)
}

func TestRunAdvisoryDiseaseMode(t *testing.T) {
	res, err := newPipeline(&fixedSources{}).Run(context.Background(),
		Request{Query: "metformin", Mode: ModeDisease, WithAdvisory: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Entities)

	byName := map[string]types.ScoredEntity{}
	for _, e := range res.Entities {
		require.NotNil(t, e.Advisory)
		byName[e.Name] = e
	}
	assert.Equal(t, 20.0, byName["Breast Cancer"].Advisory.Market.TAMUSDBillions)
	assert.Equal(t, 3.0, byName["Polycystic Ovary Syndrome"].Advisory.Market.TAMUSDBillions)
	assert.Equal(t, 40, byName["Breast Cancer"].Advisory.Patent.RiskScore)
}

func TestRunAdvisoryDrugModeKeysMarketByCondition(t *testing.T) {
	res, err := newPipeline(&fixedSources{}).Run(context.Background(),
		Request{Query: "asthma", Mode: ModeDrug, WithAdvisory: true})
	require.NoError(t, err)
	for _, e := range res.Entities {
		assert.Equal(t, advisory.Static{}.Market("asthma"), e.Advisory.Market)
		assert.Equal(t, advisory.Static{}.Patent(e.Name, "asthma"), e.Advisory.Patent)
	}
}

func TestAdvisoryDoesNotChangeConfidence(t *testing.T) {
	p := newPipeline(&fixedSources{})
	plain, err := p.Run(context.Background(), Request{Query: "metformin"})
	require.NoError(t, err)
	enriched, err := p.Run(context.Background(), Request{Query: "metformin", WithAdvisory: true})
	require.NoError(t, err)
	require.Len(t, enriched.Entities, len(plain.Entities))
	for i := range plain.Entities {
		assert.Equal(t, plain.Entities[i].Confidence, enriched.Entities[i].Confidence)
	}
}

func TestRunAppliesTrialFilters(t *testing.T) {
	src := &fixedSources{trials: []types.TrialRecord{
		{Title: "a", Interventions: []string{"Drug-A"}, Phase: "Phase 1", StartDate: "May 2021", SourceID: "NCT:a"},
		{Title: "b", Interventions: []string{"Drug-B"}, Phase: "Phase 3", StartDate: "May 2010", SourceID: "NCT:b"},
		{Title: "c", Interventions: []string{"Drug-C"}, Phase: "Phase 2/Phase 3", StartDate: "2012", CompletionDate: "June 2022", SourceID: "NCT:c"},
	}}
	res, err := newPipeline(src).Run(context.Background(),
		Request{Query: "cond", Mode: ModeDrug, MinPhase: 2, MinYear: 2020})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TrialCount)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Drug-C", res.Entities[0].Name)
	assert.Equal(t, "Phase 3", res.Entities[0].TopPhase)
}

func TestDiagnose(t *testing.T) {
	src := &fixedSources{
		lits:   []types.LiteratureRecord{{}, {}},
		trials: []types.TrialRecord{{}},
	}
	d := newPipeline(src).Diagnose(context.Background(), "metformin", 10)
	assert.Equal(t, Diagnostics{Query: "metformin", LiteratureCount: 2, TrialCount: 1, HasDemo: true}, d)
	assert.Equal(t, 10, src.gotMax)

	d = newPipeline(&fixedSources{}).Diagnose(context.Background(), "unobtainium", 10)
	assert.False(t, d.HasDemo)
}

func TestParseMinPhase(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"any", 0, false},
		{"Phase 1", 1, false},
		{"phase 2", 2, false},
		{" phase 3 ", 3, false},
		{"phase 4", 0, true},
		{"3", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMinPhase(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTrailingYear(t *testing.T) {
	tests := map[string]int{
		"March 2019":     2019,
		"2020":           2020,
		"March 15, 2018": 2018,
		"2019-03":        0,
		"":               0,
		"2019 ":          0,
	}
	for in, want := range tests {
		assert.Equal(t, want, trailingYear(in), in)
	}
}

func TestFilterTrialsNoFiltersReturnsInput(t *testing.T) {
	in := []types.TrialRecord{{Phase: ""}, {Phase: "Phase 1"}}
	assert.Equal(t, in, FilterTrials(in, 0, 0))
	assert.Len(t, FilterTrials(in, 1, 0), 1)
}

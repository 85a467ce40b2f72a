// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

func trials(n int, phase string) []types.EvidenceItem {
	out := make([]types.EvidenceItem, n)
	for i := range out {
		out[i] = types.NewTrialEvidence("t", "NCT:x", phase, "")
	}
	return out
}

func lits(n int) []types.EvidenceItem {
	out := make([]types.EvidenceItem, n)
	for i := range out {
		out[i] = types.NewLiteratureEvidence("l", "PMID:x")
	}
	return out
}

func concat(lists ...[]types.EvidenceItem) []types.EvidenceItem {
	var out []types.EvidenceItem
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// --- Confidence ---

func TestConfidence(t *testing.T) {
	tests := []struct {
		name  string
		items []types.EvidenceItem
		want  float64
	}{
		{"empty", nil, 0},
		{"single phase 2 trial", trials(1, "Phase 2"), 0.27},
		{"single phase 3 trial", trials(1, "Phase 3"), 0.35},
		{"single phase 1 trial", trials(1, "PHASE 1"), 0.21},
		{"unphased trial", trials(1, "N/A"), 0.15},
		{"combined label takes highest", trials(1, "Phase 2/Phase 3"), 0.35},
		{"early phase 1 counts as phase 1", trials(1, "Early Phase 1"), 0.21},
		{"one literature", lits(1), 0.05},
		{"literature cap", lits(10), 0.3},
		{"trial cap without bonus", trials(5, ""), 0.6},
		{"mixed", concat(trials(2, "Phase 1"), lits(3)), 0.3 + 0.12 + 0.15},
		{"clamped to one", trials(4, "Phase 3"), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.items), 1e-9)
		})
	}
}

func TestConfidenceBounded(t *testing.T) {
	huge := concat(trials(10000, "Phase 3"), lits(10000))
	got := Confidence(huge)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)

	// Malformed items of unknown kind contribute nothing.
	assert.Equal(t, 0.0, Confidence([]types.EvidenceItem{{Kind: "unknown", Phase: "Phase 3"}}))
}

func TestConfidenceMonotonic(t *testing.T) {
	for _, phase := range []string{"", "Phase 1", "Phase 2", "Phase 3"} {
		prev := -1.0
		for n := 0; n <= 12; n++ {
			got := Confidence(concat(trials(n, phase), lits(2)))
			assert.GreaterOrEqual(t, got, prev, "trials=%d phase=%q", n, phase)
			prev = got
		}
	}
	prev := -1.0
	for n := 0; n <= 12; n++ {
		got := Confidence(concat(trials(1, "Phase 2"), lits(n)))
		assert.GreaterOrEqual(t, got, prev, "lits=%d", n)
		prev = got
	}
}

func TestConfidenceOrderIndependent(t *testing.T) {
	a := concat(trials(1, "Phase 3"), lits(2), trials(1, "Phase 1"))
	b := concat(lits(2), trials(1, "Phase 1"), trials(1, "Phase 3"))
	assert.InDelta(t, Confidence(a), Confidence(b), 1e-12)
}

func TestPhaseRank(t *testing.T) {
	assert.Equal(t, 3, PhaseRank("Phase 3"))
	assert.Equal(t, 3, PhaseRank("phase 2/phase 3"))
	assert.Equal(t, 2, PhaseRank("Phase 2"))
	assert.Equal(t, 2, PhaseRank("Phase 1/Phase 2"))
	assert.Equal(t, 1, PhaseRank("Phase 1"))
	assert.Equal(t, 0, PhaseRank(""))
	assert.Equal(t, 0, PhaseRank("Phase3"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.27, Round2(0.15+0.12))
	assert.Equal(t, 0.33, Round2(0.3333333))
	assert.Equal(t, 1.0, Round2(0.999))
}

// --- Summarize ---

func TestSummarizeFallback(t *testing.T) {
	got := Summarize("Metformin", "Migraine", nil)
	assert.Equal(t, "Preliminary signals for Metformin in Migraine. Further investigation required.", got)
	assert.Contains(t, got, "Metformin")
	assert.Contains(t, got, "Migraine")
}

func TestSummarizeTrialsOnly(t *testing.T) {
	items := []types.EvidenceItem{
		types.NewTrialEvidence("a", "NCT:1", "Phase 2", "Recruiting"),
		types.NewTrialEvidence("b", "NCT:2", "Phase 3", "Completed"),
		types.NewTrialEvidence("c", "NCT:3", "Phase 2", "Recruiting"),
	}
	got := Summarize("Metformin", "Breast Cancer", items)
	assert.Equal(t,
		"ClinicalTrials.gov shows 3 trial(s) for Metformin in Breast Cancer (phases: Phase 2, Phase 3, Recruiting:2, Completed:1).",
		got)
}

func TestSummarizeTrialsWithoutPhaseOrStatus(t *testing.T) {
	got := Summarize("X", "Y", []types.EvidenceItem{types.NewTrialEvidence("a", "", "", "")})
	assert.Equal(t, "ClinicalTrials.gov shows 1 trial(s) for X in Y (phases: N/A, trials found).", got)
}

func TestSummarizeBothKinds(t *testing.T) {
	items := []types.EvidenceItem{
		types.NewLiteratureEvidence("l1", "PMID:1"),
		types.NewTrialEvidence("a", "NCT:1", "Phase 1", "Completed"),
		types.NewLiteratureEvidence("l2", "PMID:2"),
	}
	got := Summarize("Aspirin", "Stroke", items)

	sentences := strings.SplitN(got, ". ", 2)
	require.Len(t, sentences, 2)
	assert.True(t, strings.HasPrefix(got, "ClinicalTrials.gov shows 1 trial(s)"), "trial sentence first")
	assert.True(t, strings.HasSuffix(got,
		"Literature mentions support potential activity of Aspirin in Stroke (2 publication snippets)."))
}

// --- Rank ---

func TestRankStableDescending(t *testing.T) {
	entities := []types.ScoredEntity{
		{Name: "A", Confidence: 0.2},
		{Name: "B", Confidence: 0.5},
		{Name: "C", Confidence: 0.2},
		{Name: "D", Confidence: 0.5},
		{Name: "E", Confidence: 0.9},
		{Name: "F", Confidence: 0.2},
	}
	Rank(entities)

	var names []string
	for _, e := range entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"E", "B", "D", "A", "C", "F"}, names)
}

func TestRankEmpty(t *testing.T) {
	Rank(nil)
	Rank([]types.ScoredEntity{})
}

// --- metrics ---

func TestSourcesDistinctNonEmpty(t *testing.T) {
	items := []types.EvidenceItem{
		types.NewTrialEvidence("a", "NCT:2", "", ""),
		types.NewLiteratureEvidence("b", ""),
		types.NewLiteratureEvidence("c", "PMID:1"),
		types.NewTrialEvidence("d", "NCT:2", "", ""),
	}
	assert.Equal(t, []string{"NCT:2", "PMID:1"}, Sources(items))
	assert.Equal(t, []string{}, Sources(nil))
}

func TestTopPhaseAndCounts(t *testing.T) {
	items := concat(trials(1, "Phase 1"), trials(1, "Phase 2/Phase 3"), lits(2))
	assert.Equal(t, "Phase 3", TopPhase(items))
	assert.Equal(t, types.EvidenceCounts{Trials: 2, Literature: 2}, Counts(items))
	assert.Equal(t, "", TopPhase(lits(3)))
}

func TestRationale(t *testing.T) {
	assert.Equal(t, "2 trials, 1 publications; highest evidence Phase 2",
		Rationale(types.EvidenceCounts{Trials: 2, Literature: 1}, "Phase 2"))
	assert.Equal(t, "0 trials, 3 publications; highest evidence observational",
		Rationale(types.EvidenceCounts{Literature: 3}, ""))
}

func TestEntity(t *testing.T) {
	items := []types.EvidenceItem{types.NewTrialEvidence("t", "NCT:1", "Phase 2", "Recruiting")}
	e := Entity("Breast Cancer", "metformin", "metformin", "Breast Cancer", items)

	assert.Equal(t, "Breast Cancer", e.Name)
	assert.Equal(t, "metformin", e.Counterpart)
	assert.InDelta(t, 0.27, e.Confidence, 1e-9)
	assert.Equal(t, []string{"NCT:1"}, e.Sources)
	assert.Equal(t, "Phase 2", e.TopPhase)
	assert.Contains(t, e.Summary, "for metformin in Breast Cancer")
	assert.Nil(t, e.Advisory)
}

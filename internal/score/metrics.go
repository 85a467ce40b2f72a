// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

var phaseLabels = map[int]string{3: "Phase 3", 2: "Phase 2", 1: "Phase 1"}

// Counts tallies evidence by kind.
func Counts(items []types.EvidenceItem) types.EvidenceCounts {
	var c types.EvidenceCounts
	for _, it := range items {
		switch {
		case it.IsTrial():
			c.Trials++
		case it.IsLiterature():
			c.Literature++
		}
	}
	return c
}

// TopPhase returns the highest phase reached by any trial ("Phase 3",
// "Phase 2", "Phase 1"), or "" when no trial names a phase.
func TopPhase(items []types.EvidenceItem) string {
	best := 0
	for _, it := range items {
		if !it.IsTrial() {
			continue
		}
		if r := PhaseRank(it.Phase); r > best {
			best = r
		}
	}
	return phaseLabels[best]
}

// Sources returns the distinct non-empty source IDs in first-seen order.
func Sources(items []types.EvidenceItem) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range items {
		if it.SourceID == "" || seen[it.SourceID] {
			continue
		}
		seen[it.SourceID] = true
		out = append(out, it.SourceID)
	}
	return out
}

// Rationale is a one-line digest of evidence counts and the top phase.
func Rationale(counts types.EvidenceCounts, topPhase string) string {
	if topPhase == "" {
		topPhase = "observational"
	}
	return fmt.Sprintf("%d trials, %d publications; highest evidence %s",
		counts.Trials, counts.Literature, topPhase)
}

// Entity scores and describes one evidence-map entry. drug and disease name
// the association for the summary; name and counterpart are the entity and
// query as the caller wants them reported.
func Entity(name, counterpart, drug, disease string, items []types.EvidenceItem) types.ScoredEntity {
	counts := Counts(items)
	top := TopPhase(items)
	return types.ScoredEntity{
		Name:        name,
		Counterpart: counterpart,
		Summary:     Summarize(drug, disease, items),
		Confidence:  Confidence(items),
		Sources:     Sources(items),
		Counts:      counts,
		TopPhase:    top,
		Rationale:   Rationale(counts, top),
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Summarize renders a rationale for drug in disease from its evidence.
// A trial sentence (count, distinct phases, per-status counts) comes
// first, then a literature sentence; with no evidence a fixed fallback
// naming both sides is returned.
func Summarize(drug, disease string, items []types.EvidenceItem) string {
	var trials, lits int
	var phases, statuses []string
	seenPhase := make(map[string]bool)
	statusCounts := make(map[string]int)

	for _, it := range items {
		switch {
		case it.IsTrial():
			trials++
			if it.Phase != "" && !seenPhase[it.Phase] {
				seenPhase[it.Phase] = true
				phases = append(phases, it.Phase)
			}
			if it.Status != "" {
				if statusCounts[it.Status] == 0 {
					statuses = append(statuses, it.Status)
				}
				statusCounts[it.Status]++
			}
		case it.IsLiterature():
			lits++
		}
	}

	var parts []string
	if trials > 0 {
		phaseText := "N/A"
		if len(phases) > 0 {
			phaseText = strings.Join(phases, ", ")
		}
		statusText := "trials found"
		if len(statuses) > 0 {
			pairs := make([]string, len(statuses))
			for i, s := range statuses {
				pairs[i] = fmt.Sprintf("%s:%d", s, statusCounts[s])
			}
			statusText = strings.Join(pairs, ", ")
		}
		parts = append(parts, fmt.Sprintf(
			"ClinicalTrials.gov shows %d trial(s) for %s in %s (phases: %s, %s).",
			trials, drug, disease, phaseText, statusText))
	}
	if lits > 0 {
		parts = append(parts, fmt.Sprintf(
			"Literature mentions support potential activity of %s in %s (%d publication snippets).",
			drug, disease, lits))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Preliminary signals for %s in %s. Further investigation required.", drug, disease)
	}
	return strings.Join(parts, " ")
}

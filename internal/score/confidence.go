// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes confidence, rationale text, and ranking for
// entities in an evidence map. Every function here is pure.
package score

import (
	"math"
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

const (
	trialWeight      = 0.15
	trialCap         = 0.6
	literatureWeight = 0.05
	literatureCap    = 0.3

	phase3Bonus = 0.20
	phase2Bonus = 0.12
	phase1Bonus = 0.06
)

// Confidence scores an evidence list. Trial and literature counts each
// contribute a capped linear term, and every trial adds a bonus for the
// highest phase its label names. The result is clamped to [0, 1] and
// returned at full precision; use Round2 before display.
func Confidence(items []types.EvidenceItem) float64 {
	var trials, lits int
	bonus := 0.0
	for _, it := range items {
		switch {
		case it.IsTrial():
			trials++
			bonus += phaseBonus(it.Phase)
		case it.IsLiterature():
			lits++
		}
	}

	score := math.Min(float64(trials)*trialWeight, trialCap) +
		math.Min(float64(lits)*literatureWeight, literatureCap) +
		bonus
	return clamp(score)
}

// phaseBonus checks phases in fixed priority order so a combined label
// like "Phase 2/Phase 3" earns only the phase 3 bonus.
func phaseBonus(phase string) float64 {
	switch PhaseRank(phase) {
	case 3:
		return phase3Bonus
	case 2:
		return phase2Bonus
	case 1:
		return phase1Bonus
	}
	return 0
}

// PhaseRank maps a phase label to 3, 2, 1, or 0 by case-insensitive
// substring match, checking higher phases first.
func PhaseRank(phase string) int {
	p := strings.ToLower(phase)
	switch {
	case strings.Contains(p, "phase 3"):
		return 3
	case strings.Contains(p, "phase 2"):
		return 2
	case strings.Contains(p, "phase 1"):
		return 1
	}
	return 0
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 1))
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

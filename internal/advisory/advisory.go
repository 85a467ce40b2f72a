// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package advisory supplies market, patent, and regulatory enrichment for
// scored associations. Advisory values are informational and never feed
// back into confidence.
package advisory

import "github.com/pdiddy/repurpose-engine/pkg/types"

// Advisor produces enrichment for a drug/disease pair.
type Advisor interface {
	Market(disease string) types.MarketInsight
	Patent(drug, disease string) types.PatentRisk
	Regulatory(drug, disease string) types.RegulatoryPathway
}

// Bundle collects all three advisory results for one pair.
func Bundle(a Advisor, drug, disease string) *types.AdvisoryBundle {
	return &types.AdvisoryBundle{
		Market:     a.Market(disease),
		Patent:     a.Patent(drug, disease),
		Regulatory: a.Regulatory(drug, disease),
	}
}

// Static is an Advisor backed by fixed lookup tables and heuristics.
type Static struct{}

var markets = map[string]types.MarketInsight{
	"Alzheimer":     {TAMUSDBillions: 7.8, GrowthCAGR: 5.0, UnmetNeedScore: 85, UnmetNeedLabel: "high"},
	"Breast Cancer": {TAMUSDBillions: 20.0, GrowthCAGR: 4.2, UnmetNeedScore: 60, UnmetNeedLabel: "medium"},
}

var defaultMarket = types.MarketInsight{TAMUSDBillions: 3.0, GrowthCAGR: 3.0, UnmetNeedScore: 55, UnmetNeedLabel: "medium"}

const (
	// Names up to this length are treated as likely off-patent generics.
	genericNameLen = 9

	patentNotes     = "Preliminary search suggests manageable freedom-to-operate."
	pathway505b2    = "505(b)(2)"
	regulatoryNotes = "Existing safety data may support expedited development."
)

// Market returns market metrics for disease. Lookup is by exact name;
// unknown diseases get a generic profile.
func (Static) Market(disease string) types.MarketInsight {
	if m, ok := markets[disease]; ok {
		return m
	}
	return defaultMarket
}

// Patent estimates freedom-to-operate risk from the drug name alone.
func (Static) Patent(drug, _ string) types.PatentRisk {
	base := 60
	if len(drug) <= genericNameLen {
		base = 40
	}
	score := min(100, max(0, base))
	return types.PatentRisk{RiskScore: score, RiskLabel: riskLabel(score), Notes: patentNotes}
}

// Regulatory always suggests the 505(b)(2) route.
func (Static) Regulatory(_, _ string) types.RegulatoryPathway {
	return types.RegulatoryPathway{Pathway: pathway505b2, Notes: regulatoryNotes}
}

func riskLabel(score int) string {
	switch {
	case score < 35:
		return "low"
	case score < 70:
		return "medium"
	default:
		return "high"
	}
}

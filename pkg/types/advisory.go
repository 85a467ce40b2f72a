// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MarketInsight is market-sizing enrichment for a disease.
type MarketInsight struct {
	TAMUSDBillions float64 `json:"tam_usd_b" yaml:"tam_usd_b"`
	GrowthCAGR     float64 `json:"growth_cagr" yaml:"growth_cagr"`
	UnmetNeedScore int     `json:"unmet_need_score" yaml:"unmet_need_score"`
	UnmetNeedLabel string  `json:"unmet_need_label" yaml:"unmet_need_label"`
}

// PatentRisk is a freedom-to-operate estimate for a drug/disease pair.
// RiskScore is 0-100, higher is worse.
type PatentRisk struct {
	RiskScore int    `json:"risk_score" yaml:"risk_score"`
	RiskLabel string `json:"risk_label" yaml:"risk_label"`
	Notes     string `json:"notes" yaml:"notes"`
}

// RegulatoryPathway is the suggested approval route for a drug/disease pair.
type RegulatoryPathway struct {
	Pathway string `json:"pathway" yaml:"pathway"`
	Notes   string `json:"notes" yaml:"notes"`
}

// AdvisoryBundle groups the three advisory results attached to one entity.
type AdvisoryBundle struct {
	Market     MarketInsight     `json:"market" yaml:"market"`
	Patent     PatentRisk        `json:"patent" yaml:"patent"`
	Regulatory RegulatoryPathway `json:"regulatory" yaml:"regulatory"`
}

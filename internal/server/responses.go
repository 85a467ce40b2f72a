// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "github.com/pdiddy/repurpose-engine/pkg/types"

type opportunity struct {
	Disease    string   `json:"disease"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

type repurposeResponse struct {
	Drug          string        `json:"drug"`
	Opportunities []opportunity `json:"opportunities"`
}

type treatmentMetrics struct {
	Trials       int    `json:"trials"`
	Publications int    `json:"publications"`
	TopPhase     string `json:"topPhase"`
}

type treatment struct {
	Medicine   string           `json:"medicine"`
	Summary    string           `json:"summary"`
	Confidence float64          `json:"confidence"`
	Sources    []string         `json:"sources"`
	Metrics    treatmentMetrics `json:"metrics"`
	Rationale  string           `json:"rationale"`
}

type treatResponse struct {
	Condition  string      `json:"condition"`
	Treatments []treatment `json:"treatments"`
}

type explorerItem struct {
	Medicine   string                  `json:"medicine"`
	Condition  string                  `json:"condition"`
	Summary    string                  `json:"summary"`
	Confidence float64                 `json:"confidence"`
	Market     types.MarketInsight     `json:"market"`
	Patent     types.PatentRisk        `json:"patent"`
	Regulatory types.RegulatoryPathway `json:"regulatory"`
	Sources    []string                `json:"sources"`
}

type explorerResponse struct {
	Condition string         `json:"condition"`
	Items     []explorerItem `json:"items"`
}

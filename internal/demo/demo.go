// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package demo holds curated fallback evidence used when extraction over
// live records produces nothing. Tables are immutable; every lookup builds
// a fresh evidence map.
package demo

import (
	"strings"

	"github.com/pdiddy/repurpose-engine/internal/evidence"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Catalog supplies fallback evidence maps. Evidence is keyed by drug and
// yields diseases; Treatments is keyed by condition and yields drugs.
// Both return an empty map for unknown names.
type Catalog interface {
	Evidence(drug string) *evidence.Map
	Treatments(condition string) *evidence.Map
}

// Curated is the built-in Catalog.
type Curated struct{}

// Disabled is a Catalog that never supplies fallback data.
type Disabled struct{}

// Evidence implements Catalog.
func (Disabled) Evidence(string) *evidence.Map { return evidence.NewMap() }

// Treatments implements Catalog.
func (Disabled) Treatments(string) *evidence.Map { return evidence.NewMap() }

var aliases = map[string]string{
	"migrane": "migraine",
	"covid":   "covid-19",
	"hbp":     "hypertension",
	"bp":      "hypertension",
}

// NormalizeAlias trims and lowercases name and maps common misspellings
// and abbreviations to their canonical table key.
func NormalizeAlias(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// Evidence returns curated disease evidence for drug.
func (Curated) Evidence(drug string) *evidence.Map {
	return evidence.FromEntries(evidenceByDrug[NormalizeAlias(drug)]...)
}

// Treatments returns curated drug evidence for condition.
func (Curated) Treatments(condition string) *evidence.Map {
	return evidence.FromEntries(treatmentsByCondition[NormalizeAlias(condition)]...)
}

func trial(title, phase, status, sourceID string) types.EvidenceItem {
	return types.NewTrialEvidence(title, sourceID, phase, status)
}

func paper(title, sourceID string) types.EvidenceItem {
	return types.NewLiteratureEvidence(title, sourceID)
}

func entry(name string, items ...types.EvidenceItem) evidence.Entry {
	return evidence.Entry{Name: name, Evidence: items}
}

var evidenceByDrug = map[string][]evidence.Entry{
	"metformin": {
		entry("Breast Cancer",
			paper("Metformin and tumor metabolism", "PMID:demo1"),
			trial("Metformin in HER2- breast cancer", "Phase 2", "Recruiting", "NCT:demo1")),
		entry("Alzheimer's Disease",
			paper("AMPK activation and neuroprotection", "PMID:demo2")),
		entry("Polycystic Ovary Syndrome",
			trial("Metformin in PCOS", "Phase 3", "Completed", "NCT:demo2")),
	},
	"aspirin": {
		entry("Colorectal Cancer",
			paper("Aspirin and colorectal cancer chemoprevention", "PMID:demo3")),
		entry("Preeclampsia",
			trial("Low-dose aspirin for preeclampsia prevention", "Phase 3", "Completed", "NCT:demo3")),
		entry("COVID-19",
			paper("Antiplatelet therapy and COVID coagulopathy", "PMID:demo4")),
	},
	"propranolol": {
		entry("Infantile Hemangioma",
			trial("Propranolol for hemangioma", "Phase 3", "Completed", "NCT:demo4")),
		entry("PTSD",
			paper("Beta-blockade and memory reconsolidation", "PMID:demo5")),
	},
	"atorvastatin": {
		entry("Sepsis",
			paper("Statins and inflammation modulation in sepsis", "PMID:demo6")),
		entry("Multiple Sclerosis",
			trial("Atorvastatin adjunct in MS", "Phase 2", "Completed", "NCT:demo5")),
	},
}

var treatmentsByCondition = map[string][]evidence.Entry{
	"migraine": {
		entry("Sumatriptan",
			trial("Sumatriptan for acute migraine", "Phase 3", "Completed", "NCT:demo7")),
		entry("Propranolol",
			paper("Beta-blockers for migraine prophylaxis", "PMID:demo8")),
		entry("Topiramate",
			trial("Topiramate in episodic migraine prevention", "Phase 3", "Completed", "NCT:demo9")),
	},
	"asthma": {
		entry("Budesonide",
			trial("ICS therapy in persistent asthma", "Phase 3", "Completed", "NCT:demo10")),
		entry("Montelukast",
			paper("Leukotriene receptor antagonists in asthma", "PMID:demo11")),
	},
	"hypertension": {
		entry("Losartan",
			trial("ARB efficacy in stage 1 hypertension", "Phase 3", "Completed", "NCT:demo12")),
		entry("Amlodipine",
			paper("Calcium-channel blockers in hypertension management", "PMID:demo13")),
	},
	"covid-19": {
		entry("Dexamethasone",
			trial("RECOVERY: Dexamethasone in hospitalized COVID-19", "Phase 3", "Completed", "NCT:demo14")),
		entry("Remdesivir",
			trial("Antiviral therapy and time-to-recovery", "Phase 3", "Completed", "NCT:demo15")),
	},
}

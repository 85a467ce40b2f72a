// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the repurpose-engine pipeline:
// input records handed over by fetchers, evidence items produced by extraction,
// scored entities returned to callers, advisory enrichment, and configuration.
package types

// LiteratureRecord is a single literature abstract as supplied by a literature fetcher.
type LiteratureRecord struct {
	// ID is the source-native identifier (a PubMed ID for PubMed records).
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the plain-text abstract. May be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// SourceID is the provenance label, formatted "PMID:<id>".
	SourceID string `json:"source_id" yaml:"source_id"`
}

// TrialRecord is a single clinical-trial registry entry as supplied by a trial fetcher.
type TrialRecord struct {
	// ID is the registry identifier (an NCT number for ClinicalTrials.gov).
	ID string `json:"id" yaml:"id"`

	// Title is the brief study title.
	Title string `json:"title" yaml:"title"`

	// Conditions lists the studied conditions, as free text.
	Conditions []string `json:"conditions" yaml:"conditions"`

	// Interventions lists intervention names (drugs, devices, procedures).
	Interventions []string `json:"interventions" yaml:"interventions"`

	// InterventionTypes lists intervention kinds parallel to Interventions.
	InterventionTypes []string `json:"intervention_types" yaml:"intervention_types"`

	// Phase is the registry phase label (e.g. "Phase 2", "Phase 2/Phase 3").
	Phase string `json:"phase" yaml:"phase"`

	// Status is the overall recruitment status (e.g. "Recruiting", "Completed").
	Status string `json:"status" yaml:"status"`

	// StartDate is the registry start date text (e.g. "March 2019").
	StartDate string `json:"start_date" yaml:"start_date"`

	// CompletionDate is the registry completion date text.
	CompletionDate string `json:"completion_date" yaml:"completion_date"`

	// SourceID is the provenance label, formatted "NCT:<id>".
	SourceID string `json:"source_id" yaml:"source_id"`
}

// LiteratureSourceID formats a PubMed identifier as a literature source ID.
func LiteratureSourceID(pmid string) string { return "PMID:" + pmid }

// TrialSourceID formats an NCT number as a trial source ID.
func TrialSourceID(nctID string) string { return "NCT:" + nctID }

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EvidenceCounts tallies an entity's evidence by kind.
type EvidenceCounts struct {
	Trials     int `json:"trials" yaml:"trials"`
	Literature int `json:"literature" yaml:"literature"`
}

// ScoredEntity is a ranked drug↔disease association candidate.
type ScoredEntity struct {
	// Name is the extracted entity (a disease when searching from a drug,
	// a drug when searching from a condition).
	Name string `json:"name" yaml:"name"`

	// Counterpart is the query side of the association.
	Counterpart string `json:"counterpart" yaml:"counterpart"`

	// Summary is the generated natural-language rationale.
	Summary string `json:"summary" yaml:"summary"`

	// Confidence is the full-precision score in [0, 1]. Round before display.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Sources lists distinct non-empty source IDs in first-seen order.
	Sources []string `json:"sources" yaml:"sources"`

	// Counts tallies trial and literature evidence.
	Counts EvidenceCounts `json:"counts" yaml:"counts"`

	// TopPhase is the highest trial phase reached ("Phase 3", ...), or empty.
	TopPhase string `json:"top_phase" yaml:"top_phase"`

	// Rationale is a one-line evidence digest ("2 trials, 1 publications; ...").
	Rationale string `json:"rationale" yaml:"rationale"`

	// Advisory holds collaborator enrichment when requested; nil otherwise.
	Advisory *AdvisoryBundle `json:"advisory,omitempty" yaml:"advisory,omitempty"`
}

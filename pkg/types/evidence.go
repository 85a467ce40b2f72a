// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EvidenceKind discriminates the EvidenceItem variants.
type EvidenceKind string

const (
	EvidenceTrial      EvidenceKind = "trial"
	EvidenceLiterature EvidenceKind = "literature"
)

// EvidenceItem is one unit of support for an entity: either a clinical trial
// or a literature mention. Phase and Status are only meaningful for trials
// and are always empty on literature items.
type EvidenceItem struct {
	// Kind selects the variant: trial or literature.
	Kind EvidenceKind `json:"type" yaml:"type"`

	// Title is the trial or article title.
	Title string `json:"title" yaml:"title"`

	// SourceID is the provenance label ("NCT:..." or "PMID:...").
	SourceID string `json:"source_id" yaml:"source_id"`

	// Phase is the trial phase label. Trial only.
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`

	// Status is the trial recruitment status. Trial only.
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// NewTrialEvidence returns a trial evidence item.
func NewTrialEvidence(title, sourceID, phase, status string) EvidenceItem {
	return EvidenceItem{
		Kind:     EvidenceTrial,
		Title:    title,
		SourceID: sourceID,
		Phase:    phase,
		Status:   status,
	}
}

// NewLiteratureEvidence returns a literature evidence item.
func NewLiteratureEvidence(title, sourceID string) EvidenceItem {
	return EvidenceItem{
		Kind:     EvidenceLiterature,
		Title:    title,
		SourceID: sourceID,
	}
}

// IsTrial reports whether the item is trial evidence.
func (e EvidenceItem) IsTrial() bool { return e.Kind == EvidenceTrial }

// IsLiterature reports whether the item is literature evidence.
func (e EvidenceItem) IsLiterature() bool { return e.Kind == EvidenceLiterature }

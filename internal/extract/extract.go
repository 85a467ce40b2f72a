// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recognizes disease and drug entities in trial records and
// literature abstracts and folds them into an evidence map.
//
// Two independent strategies exist. Disease mode (searching from a drug)
// keys trial evidence by condition and literature evidence by vocabulary
// term. Drug mode (searching from a condition) keys trial evidence by
// intervention name and only falls back to a suffix heuristic over
// literature when no trial lists any intervention.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/repurpose-engine/internal/evidence"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Recognizer turns raw records into an evidence map. Implementations must
// be pure with respect to their inputs. The heuristic recognizer is the
// only implementation today; a statistical recognizer can be substituted
// behind the same contract.
type Recognizer interface {
	RecognizeDiseases(trials []types.TrialRecord, lits []types.LiteratureRecord) *evidence.Map
	RecognizeDrugs(trials []types.TrialRecord, lits []types.LiteratureRecord) *evidence.Map
}

// drugToken matches candidate drug tokens in lowercased text: a letter
// followed by at least four letters or hyphens.
var drugToken = regexp.MustCompile(`[a-z][a-z\-]{4,}`)

type diseaseMatcher struct {
	key string
	re  *regexp.Regexp
}

// Heuristic is a vocabulary- and suffix-driven Recognizer.
type Heuristic struct {
	diseases []diseaseMatcher
	suffixes []string
	months   map[string]bool
}

// NewHeuristic builds a recognizer over vocab. Term patterns are compiled
// once here.
func NewHeuristic(vocab Vocabulary) *Heuristic {
	h := &Heuristic{
		suffixes: normalized(vocab.DrugSuffixes),
		months:   make(map[string]bool),
	}
	for _, term := range normalized(vocab.DiseaseTerms) {
		h.diseases = append(h.diseases, diseaseMatcher{
			key: titleCase(term),
			re:  regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	for _, m := range normalized(vocab.Months) {
		h.months[m] = true
	}
	return h
}

// RecognizeDiseases extracts disease entities. Trial conditions are used
// verbatim (trimmed, case preserved); literature matches are keyed by the
// title-cased vocabulary term. The two key styles are never reconciled.
func (h *Heuristic) RecognizeDiseases(trials []types.TrialRecord, lits []types.LiteratureRecord) *evidence.Map {
	m := evidence.NewMap()

	for _, t := range trials {
		for _, cond := range t.Conditions {
			disease := strings.TrimSpace(cond)
			if disease == "" {
				continue
			}
			m.Append(disease, trialEvidence(t))
		}
	}

	for _, a := range lits {
		text := recordText(a)
		for _, d := range h.diseases {
			if d.re.MatchString(text) {
				m.Append(d.key, types.NewLiteratureEvidence(a.Title, a.SourceID))
			}
		}
	}

	return m
}

// RecognizeDrugs extracts drug entities. Trial interventions take strict
// precedence: if any trial names an intervention, literature is not read.
func (h *Heuristic) RecognizeDrugs(trials []types.TrialRecord, lits []types.LiteratureRecord) *evidence.Map {
	m := evidence.NewMap()

	for _, t := range trials {
		for _, name := range t.Interventions {
			drug := strings.TrimSpace(name)
			if drug == "" {
				continue
			}
			m.Append(drug, trialEvidence(t))
		}
	}

	if !m.Empty() {
		return m
	}

	for _, a := range lits {
		for _, tok := range uniqueTokens(recordText(a)) {
			if h.months[tok] || !h.hasDrugSuffix(tok) {
				continue
			}
			m.Append(titleCase(tok), types.NewLiteratureEvidence(a.Title, a.SourceID))
		}
	}

	return m
}

func (h *Heuristic) hasDrugSuffix(tok string) bool {
	for _, suf := range h.suffixes {
		if strings.HasSuffix(tok, suf) {
			return true
		}
	}
	return false
}

func trialEvidence(t types.TrialRecord) types.EvidenceItem {
	return types.NewTrialEvidence(t.Title, t.SourceID, t.Phase, t.Status)
}

// recordText is the lowercased title and abstract joined by a newline.
func recordText(a types.LiteratureRecord) string {
	return strings.ToLower(a.Title + "\n" + a.Abstract)
}

// uniqueTokens returns drug-candidate tokens in first-occurrence order.
func uniqueTokens(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range drugToken.FindAllString(text, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest ("heart failure" → "Heart Failure",
// "anti-tnf" → "Anti-Tnf").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

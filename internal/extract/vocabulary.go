// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Vocabulary is the static configuration the heuristic recognizer matches
// against. It is copied on construction so callers cannot mutate a live
// recognizer.
type Vocabulary struct {
	// DiseaseTerms are lowercase disease words matched on word boundaries.
	DiseaseTerms []string `json:"disease_terms" yaml:"disease_terms"`

	// DrugSuffixes are lowercase drug-naming stems matched at token end.
	DrugSuffixes []string `json:"drug_suffixes" yaml:"drug_suffixes"`

	// Months are lowercase calendar-month names excluded from drug tokens.
	Months []string `json:"months" yaml:"months"`
}

var defaultDiseaseTerms = []string{
	"cancer", "carcinoma", "tumor", "tumour", "neoplasm", "diabetes", "obesity",
	"alzheimer", "parkinson", "asthma", "copd", "hypertension", "depression",
	"anxiety", "schizophrenia", "arthritis", "psoriasis", "hepatitis", "covid",
	"influenza", "migraine", "epilepsy", "stroke", "heart failure", "coronary",
	"ibd", "crohn", "colitis", "lupus", "fibrosis", "tuberculosis",
}

var defaultDrugSuffixes = []string{
	"mab",                   // monoclonal antibodies
	"nib",                   // kinase inhibitors
	"pril", "sartan",        // ACE inhibitors, ARBs
	"statin",                // lipid lowering
	"caine",                 // anesthetics
	"zolam", "zepam",        // benzodiazepines
	"oxetine", "triptyline", // antidepressants
}

var defaultMonths = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// DefaultVocabulary returns the curated term lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		DiseaseTerms: append([]string(nil), defaultDiseaseTerms...),
		DrugSuffixes: append([]string(nil), defaultDrugSuffixes...),
		Months:       append([]string(nil), defaultMonths...),
	}
}

// LoadVocabulary reads a YAML vocabulary file. Lists absent from the file
// keep their default values.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary file: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing vocabulary file: %w", err)
	}
	return v.withDefaults(), nil
}

func (v Vocabulary) withDefaults() Vocabulary {
	def := DefaultVocabulary()
	if len(v.DiseaseTerms) == 0 {
		v.DiseaseTerms = def.DiseaseTerms
	}
	if len(v.DrugSuffixes) == 0 {
		v.DrugSuffixes = def.DrugSuffixes
	}
	if len(v.Months) == 0 {
		v.Months = def.Months
	}
	return v
}

// normalized lowercases and trims every entry and drops empties.
func normalized(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

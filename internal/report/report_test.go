// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

func sampleResult() pipeline.Result {
	return pipeline.Result{
		Query: "metformin",
		Mode:  pipeline.ModeDisease,
		Entities: []types.ScoredEntity{
			{
				Name:       "Breast Cancer",
				Summary:    "ClinicalTrials.gov shows 1 trial(s) for metformin in Breast Cancer (phases: Phase 2, Recruiting:1).",
				Confidence: 0.2749,
				Sources:    []string{"NCT:1"},
				Counts:     types.EvidenceCounts{Trials: 1},
				TopPhase:   "Phase 2",
			},
			{
				Name:       "Alzheimer",
				Summary:    "Literature mentions support potential activity of metformin in Alzheimer (1 publication snippets).",
				Confidence: 0.05,
				Sources:    []string{"PMID:1", "PMID:2", "PMID:3", "PMID:4"},
				Counts:     types.EvidenceCounts{Literature: 4},
			},
		},
		LiteratureCount: 4,
		TrialCount:      1,
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(sampleResult(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Disease")
	assert.Contains(t, out, "Breast Cancer")
	assert.Contains(t, out, "0.27")
	assert.Contains(t, out, "PMID:1, PMID:2, PMID:3 +1 more")
	assert.Contains(t, out, "1. ClinicalTrials.gov shows")
	assert.Contains(t, out, "2 candidates from 4 publications and 1 trials")
	assert.NotContains(t, out, "TAM")
	assert.NotContains(t, out, "curated demo data")
}

func TestTableDrugModeWithAdvisoryAndDemo(t *testing.T) {
	res := sampleResult()
	res.Mode = pipeline.ModeDrug
	res.UsedDemo = true
	res.Entities[0].Advisory = &types.AdvisoryBundle{
		Market: types.MarketInsight{TAMUSDBillions: 20, UnmetNeedScore: 60},
		Patent: types.PatentRisk{RiskLabel: "medium"},
	}

	var buf bytes.Buffer
	Table(res, &buf)
	out := buf.String()
	assert.Contains(t, out, "Medicine")
	assert.Contains(t, out, "TAM $B")
	assert.Contains(t, out, "20.0")
	assert.Contains(t, out, "medium")
	assert.Contains(t, out, "(curated demo data)")
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(pipeline.Result{Query: "x"}, &buf)
	assert.Equal(t, "No candidates found for \"x\".\n", buf.String())
}

func TestJSONRoundsConfidence(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	require.NoError(t, JSON(res, &buf))

	var decoded pipeline.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 0.27, decoded.Entities[0].Confidence)
	assert.True(t, strings.Contains(buf.String(), `"used_demo": false`))

	// The input keeps full precision.
	assert.Equal(t, 0.2749, res.Entities[0].Confidence)
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(sampleResult(), &buf))

	var decoded pipeline.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Entities, 2)
	assert.Equal(t, "Breast Cancer", decoded.Entities[0].Name)
	assert.Equal(t, pipeline.ModeDisease, decoded.Mode)
}

func TestWriteFormats(t *testing.T) {
	for _, format := range []string{"", "text", "JSON", "yaml"} {
		var buf bytes.Buffer
		require.NoError(t, Write(sampleResult(), format, &buf), format)
		assert.NotEmpty(t, buf.String(), format)
	}
	assert.Error(t, Write(sampleResult(), "xml", &bytes.Buffer{}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Sjögren...", truncate("Sjögren syndrome", 10))
}

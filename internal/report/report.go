// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders ranked pipeline results for the terminal or for
// machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/repurpose-engine/internal/pipeline"
	"github.com/pdiddy/repurpose-engine/internal/score"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders res in the named format.
func Write(res pipeline.Result, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		Table(res, w)
		return nil
	case FormatJSON:
		return JSON(res, w)
	case FormatYAML:
		return YAML(res, w)
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

// Table writes a ranked table followed by each entity's summary.
func Table(res pipeline.Result, w io.Writer) {
	if len(res.Entities) == 0 {
		fmt.Fprintf(w, "No candidates found for %q.\n", res.Query)
		return
	}

	label := "Disease"
	if res.Mode == pipeline.ModeDrug {
		label = "Medicine"
	}
	advised := hasAdvisory(res.Entities)

	header := fmt.Sprintf("%-4s  %-32s  %-5s  %-6s  %-4s  %-7s", "Rank", label, "Conf", "Trials", "Pubs", "Phase")
	if advised {
		header += fmt.Sprintf("  %-7s  %-6s  %-6s", "TAM $B", "Need", "Patent")
	}
	fmt.Fprintln(w, header+"  Sources")
	fmt.Fprintln(w, strings.Repeat("-", len(header)+20))

	for i, e := range res.Entities {
		phase := e.TopPhase
		if phase == "" {
			phase = "-"
		}
		line := fmt.Sprintf("%-4d  %-32s  %-5.2f  %-6d  %-4d  %-7s",
			i+1, truncate(e.Name, 32), score.Round2(e.Confidence),
			e.Counts.Trials, e.Counts.Literature, phase)
		if advised && e.Advisory != nil {
			line += fmt.Sprintf("  %-7.1f  %-6d  %-6s",
				e.Advisory.Market.TAMUSDBillions, e.Advisory.Market.UnmetNeedScore, e.Advisory.Patent.RiskLabel)
		}
		fmt.Fprintf(w, "%s  %s\n", line, formatSources(e.Sources))
	}

	fmt.Fprintln(w)
	for i, e := range res.Entities {
		fmt.Fprintf(w, "%d. %s\n", i+1, e.Summary)
	}

	fmt.Fprintf(w, "\n%d candidates from %d publications and %d trials", len(res.Entities), res.LiteratureCount, res.TrialCount)
	if res.UsedDemo {
		fmt.Fprint(w, " (curated demo data)")
	}
	fmt.Fprintln(w)
}

// JSON writes res as indented JSON with confidences rounded for display.
func JSON(res pipeline.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Rounded(res))
}

// YAML writes res as YAML with confidences rounded for display.
func YAML(res pipeline.Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(Rounded(res))
}

// Rounded returns a copy of res with every confidence rounded to two
// decimals. Ranking order is left as computed at full precision.
func Rounded(res pipeline.Result) pipeline.Result {
	out := res
	out.Entities = make([]types.ScoredEntity, len(res.Entities))
	for i, e := range res.Entities {
		e.Confidence = score.Round2(e.Confidence)
		out.Entities[i] = e
	}
	return out
}

func hasAdvisory(entities []types.ScoredEntity) bool {
	for _, e := range entities {
		if e.Advisory != nil {
			return true
		}
	}
	return false
}

func formatSources(sources []string) string {
	switch len(sources) {
	case 0:
		return "-"
	case 1, 2, 3:
		return strings.Join(sources, ", ")
	default:
		return strings.Join(sources[:3], ", ") + fmt.Sprintf(" +%d more", len(sources)-3)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

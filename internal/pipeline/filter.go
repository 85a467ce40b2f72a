// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/repurpose-engine/internal/score"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// MinPhaseOptions are the accepted minimum-phase filter values, in rank order.
var MinPhaseOptions = []string{"any", "phase 1", "phase 2", "phase 3"}

// ParseMinPhase converts a minimum-phase option to its rank (0 for "any").
func ParseMinPhase(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, nil
	}
	for rank, opt := range MinPhaseOptions {
		if v == opt {
			return rank, nil
		}
	}
	return 0, fmt.Errorf("invalid min phase %q: must be one of %s", s, strings.Join(MinPhaseOptions, ", "))
}

// FilterTrials drops trials below minPhase or whose latest known year is
// before minYear. Zero disables either filter. The input is not modified.
func FilterTrials(trials []types.TrialRecord, minPhase, minYear int) []types.TrialRecord {
	if minPhase <= 0 && minYear <= 0 {
		return trials
	}
	out := make([]types.TrialRecord, 0, len(trials))
	for _, t := range trials {
		if minPhase > 0 && score.PhaseRank(t.Phase) < minPhase {
			continue
		}
		if minYear > 0 && max(trailingYear(t.StartDate), trailingYear(t.CompletionDate)) < minYear {
			continue
		}
		out = append(out, t)
	}
	return out
}

// trailingYear reads the last space-separated token of a registry date
// ("March 2019" → 2019). Anything unparseable counts as year zero.
func trailingYear(date string) int {
	parts := strings.Split(date, " ")
	y, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return y
}

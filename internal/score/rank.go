// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"sort"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Rank sorts entities by confidence, highest first, in place. Ties keep
// their input order, which is the evidence map's insertion order.
func Rank(entities []types.ScoredEntity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Confidence > entities[j].Confidence
	})
}

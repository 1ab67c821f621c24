package events

import (
	"maps"
	"slices"
	"time"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// BuildFilter returns the filter for the next poll: everything created after
// the watermark, plus every event still in progress. In-progress events must
// be asked for by id because their created time never moves.
func BuildFilter(mostRecentEventTime int64, inProgressIDs []int64) models.EventFilter {
	after := time.UnixMilli(mostRecentEventTime).UTC().Format(models.WireTimeFormat)
	clauses := []models.FilterClause{{Created: &models.TimeCondition{After: after}}}

	ids := slices.Clone(inProgressIDs)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		clauses = append(clauses, models.FilterClause{ID: &id})
	}

	return models.EventFilter{
		Or:      clauses,
		OrderBy: "created",
		Order:   "desc",
	}
}

// InProgressIDs returns the ids tracked in a progress map, sorted ascending.
func InProgressIDs(progress map[int64]int) []int64 {
	return slices.Sorted(maps.Keys(progress))
}

package events

import (
	"maps"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// UpdateInProgress layers the progress carried by incoming over current.
// Completed events leave the map, in-progress events set their percentage,
// and events without a percentage are ignored. current is not modified.
func UpdateInProgress(current map[int64]int, incoming []models.Event) map[int64]int {
	next := maps.Clone(current)
	if next == nil {
		next = make(map[int64]int)
	}
	for _, e := range incoming {
		switch {
		case e.Complete():
			delete(next, e.ID)
		case e.InProgress():
			next[e.ID] = *e.PercentComplete
		}
	}
	return next
}

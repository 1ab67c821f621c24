package events

import "github.com/PratikDhanave/event-feed-service/internal/models"

// Merge folds a freshly fetched batch into the known list.
//
// The batch is walked oldest-first. An event whose id is already known
// replaces the known copy where it stands; anything else is prepended, so
// the result stays most-recent-first. Nothing is dropped and neither input
// is modified.
func Merge(previous, incoming []models.Event) []models.Event {
	out := make([]models.Event, len(previous), len(previous)+len(incoming))
	copy(out, previous)

	for i := len(incoming) - 1; i >= 0; i-- {
		e := incoming[i]
		if idx := indexByID(out, e.ID); idx >= 0 {
			// A known deletion is never forgotten.
			if e.Deleted == "" {
				e.Deleted = out[idx].Deleted
			}
			out[idx] = e
			continue
		}
		out = append(out, models.Event{})
		copy(out[1:], out)
		out[0] = e
	}
	return out
}

func indexByID(list []models.Event, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

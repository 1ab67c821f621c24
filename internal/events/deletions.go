package events

import "github.com/PratikDhanave/event-feed-service/internal/models"

// TagDeletions marks every event whose entity has a finished deletion.
//
// Entities are matched structurally, so an event is only tagged when its
// entity reference equals the deleted one in every field. The list is
// returned as-is when it holds no deletion.
func TagDeletions(list []models.Event) []models.Event {
	var deletions []models.Event
	for _, e := range list {
		if e.Entity != nil && e.Action.IsDeletion() && e.Status.Terminal() {
			deletions = append(deletions, e)
		}
	}
	if len(deletions) == 0 {
		return list
	}

	out := make([]models.Event, len(list))
	for i, e := range list {
		out[i] = e
		if e.Entity == nil || e.Deleted != "" {
			continue
		}
		for _, d := range deletions {
			if *d.Entity == *e.Entity {
				out[i].Deleted = d.Created
				break
			}
		}
	}
	return out
}

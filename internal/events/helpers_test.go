package events

import "github.com/PratikDhanave/event-feed-service/internal/models"

func pct(n int) *int { return &n }

func linode(id int64, label string) *models.Entity {
	return &models.Entity{ID: id, Label: label, Type: "linode", URL: "/v4/linode/instances/" + label}
}

func ev(id int64, action models.Action, status models.Status, created string) models.Event {
	return models.Event{ID: id, Action: action, Status: status, Created: created}
}

func ids(list []models.Event) []int64 {
	out := make([]int64, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

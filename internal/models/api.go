package models

// EventView is an event as served to console clients, with its rendered message.
type EventView struct {
	Event
	Rendered string `json:"rendered"`
}

// EventListResponse is returned by GET /events.
type EventListResponse struct {
	Events              []EventView   `json:"events"`
	CountUnseen         int           `json:"count_unseen"`
	MostRecentEventTime int64         `json:"most_recent_event_time"`
	InProgress          map[int64]int `json:"in_progress"`
}

// MarkSeenResponse is returned by POST /events/seen.
// SeenThrough is the highest event id acknowledged, 0 when nothing was known.
type MarkSeenResponse struct {
	SeenThrough int64 `json:"seen_through"`
	CountUnseen int   `json:"count_unseen"`
}

// RenderResponse carries one rendered message.
type RenderResponse struct {
	Message string `json:"message"`
}

package models

import (
	"strings"
	"time"
)

// WireTimeFormat is the timestamp layout used by the provider API.
// Timestamps carry no zone and are always UTC.
const WireTimeFormat = "2006-01-02T15:04:05"

// Status is the lifecycle stage reported for an event.
type Status string

const (
	StatusScheduled    Status = "scheduled"
	StatusStarted      Status = "started"
	StatusFinished     Status = "finished"
	StatusFailed       Status = "failed"
	StatusNotification Status = "notification"
)

// Terminal reports whether no further status change is expected.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusNotification
}

// Action identifies the category of change, e.g. "linode_boot".
type Action string

// deletionMarker appears in every action that removes its entity.
const deletionMarker = "_delete"

// IsDeletion reports whether the action removes its entity.
func (a Action) IsDeletion() bool {
	return strings.Contains(string(a), deletionMarker)
}

// Entity references the resource an event pertains to.
// All fields are comparable so two references can be compared with ==.
type Entity struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

// Event is one asynchronous state-change notification from the provider.
//
// Field names mirror the provider's JSON exactly. Initial and Deleted are
// derived locally and are never sent by the provider.
type Event struct {
	ID              int64    `json:"id"`
	Action          Action   `json:"action"`
	Status          Status   `json:"status"`
	Created         string   `json:"created"`
	PercentComplete *int     `json:"percent_complete"`
	Entity          *Entity  `json:"entity"`
	SecondaryEntity *Entity  `json:"secondary_entity"`
	Seen            bool     `json:"seen"`
	Read            bool     `json:"read"`
	Username        string   `json:"username,omitempty"`
	Message         string   `json:"message,omitempty"`
	Duration        *float64 `json:"duration,omitempty"`
	Rate            *string  `json:"rate,omitempty"`

	// Initial is set on events from the first fetch of a session.
	Initial bool `json:"_initial,omitempty"`
	// Deleted holds the created timestamp of the deletion of Entity.
	Deleted string `json:"_deleted,omitempty"`
}

// CreatedAt parses Created. RFC3339 values are accepted as well as the
// provider's zone-less format.
func (e Event) CreatedAt() (time.Time, error) {
	if t, err := time.ParseInLocation(WireTimeFormat, e.Created, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, e.Created)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// InProgress reports whether the event carries a completion percentage below 100.
func (e Event) InProgress() bool {
	return e.PercentComplete != nil && *e.PercentComplete >= 0 && *e.PercentComplete < 100
}

// Complete reports whether the event reached 100 percent.
func (e Event) Complete() bool {
	return e.PercentComplete != nil && *e.PercentComplete == 100
}

// EntityLabel returns the primary entity label, or "" without an entity.
func (e Event) EntityLabel() string {
	if e.Entity == nil {
		return ""
	}
	return e.Entity.Label
}

// EventPage is the provider's paginated envelope for GET /account/events.
type EventPage struct {
	Data    []Event `json:"data"`
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	Results int     `json:"results"`
}

// Package events keeps the normalized view of provider events: merged by id,
// tagged with deletions, capped to the most recent MaxEvents, with a
// watermark for the next poll and a map of events still in progress.
package events

import (
	"maps"
	"slices"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// MaxEvents is how many events the store retains, most recent first.
const MaxEvents = 100

// EpochTime is the watermark before anything has been fetched.
const EpochTime int64 = 0

// State is the event store. Transitions return a new State and never
// modify the receiver's slices or maps.
type State struct {
	Events              []models.Event
	MostRecentEventTime int64 // Unix milliseconds
	CountUnseenEvents   int
	InProgressEvents    map[int64]int
}

// InitialState returns the empty store with the watermark at EpochTime.
func InitialState() State {
	return State{
		Events:              []models.Event{},
		MostRecentEventTime: EpochTime,
		InProgressEvents:    map[int64]int{},
	}
}

// AddEvents applies one fetched batch.
func (s State) AddEvents(batch []models.Event) State {
	initial := s.MostRecentEventTime == EpochTime

	incoming := make([]models.Event, len(batch))
	for i, e := range batch {
		e.Initial = initial
		incoming[i] = e
	}

	list := TagDeletions(Merge(s.Events, incoming))
	if len(list) > MaxEvents {
		list = slices.Clone(list[:MaxEvents])
	}

	return State{
		Events:              list,
		MostRecentEventTime: advanceWatermark(s.MostRecentEventTime, batch),
		CountUnseenEvents:   countUnseen(list),
		InProgressEvents:    UpdateInProgress(s.InProgressEvents, batch),
	}
}

// MarkAllSeen flags every retained event as seen.
func (s State) MarkAllSeen() State {
	list := make([]models.Event, len(s.Events))
	for i, e := range s.Events {
		e.Seen = true
		list[i] = e
	}
	return State{
		Events:              list,
		MostRecentEventTime: s.MostRecentEventTime,
		CountUnseenEvents:   0,
		InProgressEvents:    s.InProgressEvents,
	}
}

// MaxEventID returns the highest retained event id, or 0 when empty.
func (s State) MaxEventID() int64 {
	var highest int64
	for _, e := range s.Events {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest
}

// Event returns the retained event with the given id.
func (s State) Event(id int64) (models.Event, bool) {
	if idx := indexByID(s.Events, id); idx >= 0 {
		return s.Events[idx], true
	}
	return models.Event{}, false
}

// Clone returns a copy whose slice and map are not shared with s.
func (s State) Clone() State {
	return State{
		Events:              slices.Clone(s.Events),
		MostRecentEventTime: s.MostRecentEventTime,
		CountUnseenEvents:   s.CountUnseenEvents,
		InProgressEvents:    maps.Clone(s.InProgressEvents),
	}
}

// advanceWatermark never moves backwards; unparsable timestamps are skipped.
func advanceWatermark(current int64, batch []models.Event) int64 {
	for _, e := range batch {
		t, err := e.CreatedAt()
		if err != nil {
			continue
		}
		if ms := t.UnixMilli(); ms > current {
			current = ms
		}
	}
	return current
}

func countUnseen(list []models.Event) int {
	n := 0
	for _, e := range list {
		if !e.Seen {
			n++
		}
	}
	return n
}

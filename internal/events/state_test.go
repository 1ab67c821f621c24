package events

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

func millis(t *testing.T, created string) int64 {
	t.Helper()
	ts, err := time.ParseInLocation(models.WireTimeFormat, created, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", created, err)
	}
	return ts.UnixMilli()
}

func TestAddEventsDeletionScenario(t *testing.T) {
	const t0, t1 = "2024-01-01T00:00:00", "2024-01-01T00:05:00"

	del := ev(5, "linode_delete", models.StatusFinished, t1)
	del.Entity = &models.Entity{ID: 10, Label: "foo"}
	boot := ev(6, "linode_boot", models.StatusScheduled, t0)
	boot.Entity = &models.Entity{ID: 10, Label: "foo"}

	s := InitialState().AddEvents([]models.Event{del})
	s = s.AddEvents([]models.Event{del, boot})

	if diff := cmp.Diff([]int64{6, 5}, ids(s.Events)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	got, ok := s.Event(6)
	if !ok {
		t.Fatal("event 6 missing")
	}
	if got.Deleted != t1 {
		t.Errorf("expected event 6 _deleted %q, got %q", t1, got.Deleted)
	}
	if s.MostRecentEventTime != millis(t, t1) {
		t.Errorf("watermark regressed: got %d want %d", s.MostRecentEventTime, millis(t, t1))
	}
}

func TestAddEventsWatermarkIsMonotonic(t *testing.T) {
	batches := [][]models.Event{
		{ev(1, "linode_boot", models.StatusFinished, "2024-01-01T10:00:00")},
		{ev(2, "linode_boot", models.StatusFinished, "2023-12-31T10:00:00")},
		{ev(3, "linode_boot", models.StatusFinished, "not a timestamp")},
		{},
		{ev(4, "linode_boot", models.StatusFinished, "2024-01-02T10:00:00Z")},
	}

	s := InitialState()
	for i, b := range batches {
		before := s.MostRecentEventTime
		s = s.AddEvents(b)
		if s.MostRecentEventTime < before {
			t.Fatalf("batch %d: watermark went from %d to %d", i, before, s.MostRecentEventTime)
		}
	}
	if s.MostRecentEventTime != millis(t, "2024-01-02T10:00:00") {
		t.Errorf("unexpected final watermark %d", s.MostRecentEventTime)
	}
}

func TestAddEventsMarksOnlyFirstFetchInitial(t *testing.T) {
	s := InitialState().AddEvents([]models.Event{ev(1, "linode_boot", models.StatusFinished, "2024-01-01T00:00:01")})
	s = s.AddEvents([]models.Event{ev(2, "linode_boot", models.StatusFinished, "2024-01-01T00:00:02")})

	first, _ := s.Event(1)
	second, _ := s.Event(2)
	if !first.Initial {
		t.Error("expected first-fetch event to be initial")
	}
	if second.Initial {
		t.Error("expected later event not to be initial")
	}
}

func TestAddEventsTruncatesToMostRecent(t *testing.T) {
	s := InitialState()
	for id := int64(1); id <= MaxEvents+20; id++ {
		created := time.Unix(id, 0).UTC().Format(models.WireTimeFormat)
		s = s.AddEvents([]models.Event{ev(id, "linode_boot", models.StatusFinished, created)})
	}

	if len(s.Events) != MaxEvents {
		t.Fatalf("expected %d events, got %d", MaxEvents, len(s.Events))
	}
	if s.Events[0].ID != MaxEvents+20 {
		t.Errorf("expected newest event first, got %d", s.Events[0].ID)
	}
	if _, ok := s.Event(20); ok {
		t.Error("expected oldest events to be dropped")
	}
}

func TestAddEventsCountsUnseen(t *testing.T) {
	batch := make([]models.Event, 0, 6)
	for i := int64(1); i <= 6; i++ {
		e := ev(i, "linode_boot", models.StatusFinished, fmt.Sprintf("2024-01-01T00:00:0%d", i))
		e.Seen = i%2 == 0
		batch = append(batch, e)
	}

	s := InitialState().AddEvents(batch)
	if s.CountUnseenEvents != 3 {
		t.Errorf("expected 3 unseen, got %d", s.CountUnseenEvents)
	}

	// A re-delivered event that became seen lowers the count.
	seen := batch[0]
	seen.Seen = true
	s = s.AddEvents([]models.Event{seen})
	if s.CountUnseenEvents != 2 {
		t.Errorf("expected 2 unseen, got %d", s.CountUnseenEvents)
	}
}

func TestAddEventsTracksProgressFromRawBatch(t *testing.T) {
	resize := ev(1, "linode_resize", models.StatusStarted, "2024-01-01T00:00:01")
	resize.PercentComplete = pct(40)

	s := InitialState().AddEvents([]models.Event{resize})
	if diff := cmp.Diff(map[int64]int{1: 40}, s.InProgressEvents); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}

	resize.PercentComplete = pct(100)
	resize.Status = models.StatusFinished
	s = s.AddEvents([]models.Event{resize})
	if len(s.InProgressEvents) != 0 {
		t.Errorf("expected no in-progress events, got %v", s.InProgressEvents)
	}
}

func TestMarkAllSeen(t *testing.T) {
	s := InitialState().AddEvents([]models.Event{
		ev(2, "linode_boot", models.StatusFinished, "2024-01-01T00:00:02"),
		ev(1, "linode_boot", models.StatusFinished, "2024-01-01T00:00:01"),
	})
	before := s

	s = s.MarkAllSeen()
	if s.CountUnseenEvents != 0 {
		t.Errorf("expected 0 unseen, got %d", s.CountUnseenEvents)
	}
	for _, e := range s.Events {
		if !e.Seen {
			t.Errorf("event %d not seen", e.ID)
		}
	}
	if before.Events[0].Seen {
		t.Error("MarkAllSeen modified the previous state")
	}
	if s.MaxEventID() != 2 {
		t.Errorf("expected max id 2, got %d", s.MaxEventID())
	}
}

func TestInitialState(t *testing.T) {
	s := InitialState()
	if s.MostRecentEventTime != EpochTime || s.CountUnseenEvents != 0 || len(s.Events) != 0 || len(s.InProgressEvents) != 0 {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if s.MaxEventID() != 0 {
		t.Errorf("expected max id 0, got %d", s.MaxEventID())
	}
}

package events

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

func TestMergePrependsNewEventsMostRecentFirst(t *testing.T) {
	previous := []models.Event{
		ev(2, "linode_boot", models.StatusFinished, "2024-01-01T00:00:02"),
		ev(1, "linode_create", models.StatusFinished, "2024-01-01T00:00:01"),
	}
	incoming := []models.Event{
		ev(4, "linode_reboot", models.StatusStarted, "2024-01-01T00:00:04"),
		ev(3, "linode_shutdown", models.StatusStarted, "2024-01-01T00:00:03"),
	}

	got := ids(Merge(previous, incoming))
	if diff := cmp.Diff([]int64{4, 3, 2, 1}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUpdatesKnownEventInPlace(t *testing.T) {
	previous := []models.Event{
		ev(3, "linode_boot", models.StatusFinished, "2024-01-01T00:00:03"),
		ev(2, "linode_resize", models.StatusStarted, "2024-01-01T00:00:02"),
		ev(1, "linode_create", models.StatusFinished, "2024-01-01T00:00:01"),
	}
	updated := ev(2, "linode_resize", models.StatusFinished, "2024-01-01T00:00:02")
	updated.PercentComplete = pct(100)

	got := Merge(previous, []models.Event{updated})

	if diff := cmp.Diff([]int64{3, 2, 1}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if got[1].Status != models.StatusFinished {
		t.Errorf("expected status finished, got %s", got[1].Status)
	}
	if previous[1].Status != models.StatusStarted {
		t.Error("previous slice was modified")
	}
}

func TestMergeRedeliveryIsIdempotent(t *testing.T) {
	e := ev(7, "volume_create", models.StatusFinished, "2024-01-01T00:00:07")
	once := Merge(nil, []models.Event{e})
	twice := Merge(once, []models.Event{e})

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("re-delivery changed the list (-once +twice):\n%s", diff)
	}
}

func TestMergeKeepsKnownDeletion(t *testing.T) {
	known := ev(5, "linode_boot", models.StatusStarted, "2024-01-01T00:00:05")
	known.Deleted = "2024-01-01T00:01:00"

	redelivered := ev(5, "linode_boot", models.StatusFinished, "2024-01-01T00:00:05")
	got := Merge([]models.Event{known}, []models.Event{redelivered})

	if got[0].Deleted != known.Deleted {
		t.Errorf("expected _deleted %q to survive, got %q", known.Deleted, got[0].Deleted)
	}
	if got[0].Status != models.StatusFinished {
		t.Errorf("expected status to advance, got %s", got[0].Status)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}
}

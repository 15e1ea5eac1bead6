package models

import (
	"testing"
	"time"
)

func TestEventHasEnded(t *testing.T) {
	now := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)

	t.Run("ExplicitEndTime", func(t *testing.T) {
		event := &Event{StartsAt: now.Add(-5 * time.Hour), EndsAt: now.Add(-time.Hour)}
		if !event.HasEnded(now) {
			t.Error("Event with a past end time must count as ended")
		}
		if event.HasEnded(now.Add(-2 * time.Hour)) {
			t.Error("Event must not count as ended before its end time")
		}
	})

	t.Run("FallbackFromStart", func(t *testing.T) {
		event := &Event{StartsAt: now.Add(-4 * time.Hour)}
		if !event.HasEnded(now) {
			t.Error("Event without an end time ends three hours after start")
		}

		fresh := &Event{StartsAt: now.Add(-time.Hour)}
		if fresh.HasEnded(now) {
			t.Error("Recently started event must not count as ended")
		}
	})
}

func TestValidStatusTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusPaid},
		{StatusApproved, StatusRejected},
	}
	for _, tr := range allowed {
		if !ValidStatusTransition(tr.from, tr.to) {
			t.Errorf("Expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusPaid},
		{StatusPaid, StatusRejected},
		{StatusPaid, StatusApproved},
		{StatusRejected, StatusApproved},
		{StatusApproved, StatusPending},
	}
	for _, tr := range denied {
		if ValidStatusTransition(tr.from, tr.to) {
			t.Errorf("Expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

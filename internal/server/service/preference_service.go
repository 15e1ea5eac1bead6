package service

import (
	"context"
	"log/slog"
	"time"

	"rotape-service/internal/ports/models"
)

type PreferenceService struct {
	events EventStore
	apps   ApplicationStore
	prefs  PreferenceStore
	tally  TallyCache
	now    func() time.Time
}

func NewPreferenceService(events EventStore, apps ApplicationStore, prefs PreferenceStore, tally TallyCache) *PreferenceService {
	return &PreferenceService{
		events: events,
		apps:   apps,
		prefs:  prefs,
		tally:  tally,
		now:    time.Now,
	}
}

// Submit validates and persists one ranked preference for (eventID, voterID).
// A second submission for the same key overwrites the first. On success the
// event tally is recomputed and cached.
func (s *PreferenceService) Submit(ctx context.Context, eventID, voterID uint, req models.SubmitPreferenceRequest) (*models.Preference, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if !event.HasEnded(s.now()) {
		return nil, invalid("event", "event has not ended yet")
	}

	voter, err := s.apps.GetByEventAndUID(ctx, eventID, voterID)
	if err != nil {
		return nil, err
	}
	if voter == nil {
		return nil, ErrNotFound
	}
	if voter.Status != models.StatusPaid {
		return nil, invalid("voter", "application is not payment-confirmed")
	}

	if err := s.validateChoices(ctx, eventID, voter, req); err != nil {
		return nil, err
	}

	pref := &models.Preference{
		EventID: eventID,
		VoterID: voterID,
		First:   req.First,
		Second:  req.Second,
		Third:   req.Third,
		Message: req.Message,
	}
	if err := s.prefs.Put(ctx, pref); err != nil {
		return nil, err
	}

	s.refreshTally(ctx, eventID)
	return pref, nil
}

// Get returns the voter's submitted preference for an event
func (s *PreferenceService) Get(ctx context.Context, eventID, voterID uint) (*models.Preference, error) {
	pref, err := s.prefs.GetByEventAndVoter(ctx, eventID, voterID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, ErrNotFound
	}
	return pref, nil
}

func (s *PreferenceService) validateChoices(ctx context.Context, eventID uint, voter *models.Application, req models.SubmitPreferenceRequest) error {
	slots := []struct {
		name string
		uid  uint
	}{
		{"first", req.First},
		{"second", req.Second},
		{"third", req.Third},
	}

	seen := make(map[uint]string, 3)
	for _, slot := range slots {
		if slot.uid == 0 {
			continue
		}
		if slot.uid == voter.UID {
			return invalid(slot.name, "cannot rank yourself")
		}
		if prev, dup := seen[slot.uid]; dup {
			return invalid(slot.name, "duplicates the "+prev+" choice")
		}
		seen[slot.uid] = slot.name

		candidate, err := s.apps.GetByEventAndUID(ctx, eventID, slot.uid)
		if err != nil {
			return err
		}
		if candidate == nil {
			return invalid(slot.name, "no application for this event")
		}
		if candidate.Status != models.StatusApproved && candidate.Status != models.StatusPaid {
			return invalid(slot.name, "candidate is not approved for this event")
		}
		if candidate.Gender == voter.Gender {
			return invalid(slot.name, "candidate must be of the opposite category")
		}
	}
	return nil
}

// refreshTally recomputes the event tally from the full ledger and rewrites
// the cache. Cache failures do not fail the submission; the worker rebuilds
// the cache from the Kafka stream.
func (s *PreferenceService) refreshTally(ctx context.Context, eventID uint) {
	list, err := s.prefs.ListByEvent(ctx, eventID)
	if err != nil {
		slog.Warn("tally refresh: listing preferences failed", "event_id", eventID, "error", err)
		return
	}
	if err := s.tally.Set(ctx, ComputeVoteTally(eventID, list)); err != nil {
		slog.Warn("tally refresh: cache write failed", "event_id", eventID, "error", err)
	}
}

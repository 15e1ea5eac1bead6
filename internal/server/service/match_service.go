package service

import (
	"context"
	"log/slog"

	"rotape-service/internal/ports/models"
)

// MatchPublisher fans resolved pairs out to interested consumers
type MatchPublisher interface {
	PublishMatches(ctx context.Context, eventID uint, pairs []models.MatchPair) error
}

type MatchService struct {
	prefs     PreferenceStore
	matches   MatchStore
	tally     TallyCache
	publisher MatchPublisher
}

// NewMatchService wires the resolver. publisher may be nil, in which case
// results are only persisted.
func NewMatchService(prefs PreferenceStore, matches MatchStore, tally TallyCache, publisher MatchPublisher) *MatchService {
	return &MatchService{
		prefs:     prefs,
		matches:   matches,
		tally:     tally,
		publisher: publisher,
	}
}

// Resolve recomputes the pairing for an event from the full preference
// ledger, replaces the stored snapshot, and publishes the result.
func (s *MatchService) Resolve(ctx context.Context, eventID uint) ([]models.MatchPair, error) {
	list, err := s.prefs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	pairs := ResolveMatches(list)
	for i := range pairs {
		pairs[i].EventID = eventID
	}

	if err := s.matches.ReplaceForEvent(ctx, eventID, pairs); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishMatches(ctx, eventID, pairs); err != nil {
			slog.Warn("publishing match results failed", "event_id", eventID, "error", err)
		}
	}

	slog.Info("matches resolved", "event_id", eventID, "preferences", len(list), "pairs", len(pairs))
	return pairs, nil
}

// List returns the last resolved snapshot for an event
func (s *MatchService) List(ctx context.Context, eventID uint) ([]models.MatchPair, error) {
	return s.matches.ListByEvent(ctx, eventID)
}

// Tally returns the cached popularity report for an event, recomputing from
// the ledger on a cache miss.
func (s *MatchService) Tally(ctx context.Context, eventID uint) (*models.VoteTally, error) {
	cached, err := s.tally.Get(ctx, eventID)
	if err != nil {
		slog.Warn("tally cache read failed", "event_id", eventID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	list, err := s.prefs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tally := ComputeVoteTally(eventID, list)
	if err := s.tally.Set(ctx, tally); err != nil {
		slog.Warn("tally cache write failed", "event_id", eventID, "error", err)
	}
	return &tally, nil
}

package service

import (
	"context"
	"sync"
	"testing"

	"rotape-service/internal/ports/models"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []models.MatchResultMessage
}

func (p *fakePublisher) PublishMatches(_ context.Context, eventID uint, pairs []models.MatchPair) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, models.MatchResultMessage{EventID: eventID, Pairs: pairs})
	return nil
}

func TestMatchService(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvePersistsAndPublishes", func(t *testing.T) {
		prefs := newFakePrefStore()
		_ = prefs.Put(ctx, &models.Preference{EventID: 1, VoterID: 1, First: 2})
		_ = prefs.Put(ctx, &models.Preference{EventID: 1, VoterID: 2, First: 1})

		matches := newFakeMatchStore()
		publisher := &fakePublisher{}
		svc := NewMatchService(prefs, matches, newFakeTallyCache(), publisher)

		pairs, err := svc.Resolve(ctx, 1)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if len(pairs) != 1 || pairs[0].Score != ScoreMutualFirst {
			t.Fatalf("Expected one mutual-first pair, got %+v", pairs)
		}
		if pairs[0].EventID != 1 {
			t.Errorf("Expected event id stamped on the pair, got %d", pairs[0].EventID)
		}

		stored, _ := matches.ListByEvent(ctx, 1)
		if len(stored) != 1 {
			t.Errorf("Expected stored snapshot with 1 pair, got %d", len(stored))
		}
		if len(publisher.published) != 1 {
			t.Errorf("Expected one published result, got %d", len(publisher.published))
		}
	})

	t.Run("ResolveReplacesPreviousSnapshot", func(t *testing.T) {
		prefs := newFakePrefStore()
		matches := newFakeMatchStore()
		_ = matches.ReplaceForEvent(ctx, 1, []models.MatchPair{{EventID: 1, UserA: 7, UserB: 8, Score: 5}})

		svc := NewMatchService(prefs, matches, newFakeTallyCache(), nil)
		if _, err := svc.Resolve(ctx, 1); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		stored, _ := matches.ListByEvent(ctx, 1)
		if len(stored) != 0 {
			t.Errorf("Expected empty snapshot after resolving an empty ledger, got %d pairs", len(stored))
		}
	})

	t.Run("TallyRecomputesOnCacheMiss", func(t *testing.T) {
		prefs := newFakePrefStore()
		_ = prefs.Put(ctx, &models.Preference{EventID: 1, VoterID: 1, First: 2})

		cache := newFakeTallyCache()
		svc := NewMatchService(prefs, newFakeMatchStore(), cache, nil)

		tally, err := svc.Tally(ctx, 1)
		if err != nil {
			t.Fatalf("Tally failed: %v", err)
		}
		if tally.TotalVotes != 1 {
			t.Errorf("Expected 1 total vote, got %d", tally.TotalVotes)
		}
		if cache.sets != 1 {
			t.Errorf("Expected the recomputed tally to be cached, got %d cache writes", cache.sets)
		}
	})

	t.Run("TallyServedFromCache", func(t *testing.T) {
		cache := newFakeTallyCache()
		_ = cache.Set(ctx, models.VoteTally{EventID: 1, TotalVotes: 7})
		setsBefore := cache.sets

		svc := NewMatchService(newFakePrefStore(), newFakeMatchStore(), cache, nil)
		tally, err := svc.Tally(ctx, 1)
		if err != nil {
			t.Fatalf("Tally failed: %v", err)
		}
		if tally.TotalVotes != 7 {
			t.Errorf("Expected cached tally, got %+v", tally)
		}
		if cache.sets != setsBefore {
			t.Errorf("Cache hit must not rewrite the cache")
		}
	})
}

package service

import (
	"context"
	"math/rand/v2"
	"time"

	"rotape-service/internal/ports/models"
)

// Fixed pseudonym pools, eight entries per category. The pool size caps each
// category at eight paid participants per event.
var nicknamePools = map[string][]string{
	models.GenderMale:   {"Tiger", "Wolf", "Eagle", "Lion", "Hawk", "Bear", "Fox", "Falcon"},
	models.GenderFemale: {"Rose", "Lily", "Daisy", "Violet", "Iris", "Jasmine", "Tulip", "Camellia"},
}

const (
	allocMaxAttempts = 5
	allocBaseBackoff = 25 * time.Millisecond
)

type NicknameService struct {
	apps        ApplicationStore
	maxAttempts int
	baseBackoff time.Duration
	pick        func(n int) int
}

func NewNicknameService(apps ApplicationStore) *NicknameService {
	return &NicknameService{
		apps:        apps,
		maxAttempts: allocMaxAttempts,
		baseBackoff: allocBaseBackoff,
		pick:        rand.IntN,
	}
}

// Assign gives the application a unique pseudonym from its category pool.
// Only payment-confirmed applications qualify; the availability scan and the
// store's taken-guard both count paid holders only, so naming an unpaid
// application could hand out a duplicate. Idempotent: an already-named
// application gets its existing nickname back with no write. Concurrent
// callers race on the store's compare-and-set; a loser re-reads availability
// and retries with increasing backoff.
func (s *NicknameService) Assign(ctx context.Context, appKey string, eventID uint, category string) (string, error) {
	pool, ok := nicknamePools[category]
	if !ok {
		return "", invalid("category", "unknown category")
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		app, err := s.apps.GetByKey(ctx, appKey)
		if err != nil {
			return "", err
		}
		if app == nil || app.EventID != eventID {
			return "", ErrNotFound
		}
		if app.Nickname != "" {
			return app.Nickname, nil
		}
		if app.Status != models.StatusPaid {
			return "", invalid("status", "application is not payment-confirmed")
		}

		available, err := s.availableNicknames(ctx, eventID, category, pool)
		if err != nil {
			return "", err
		}
		if len(available) == 0 {
			return "", ErrPoolExhausted
		}

		choice := available[s.pick(len(available))]
		committed, err := s.apps.CompareAndSetNickname(ctx, appKey, "", choice)
		if err != nil {
			return "", err
		}
		if committed {
			return choice, nil
		}

		// Lost the race; back off before re-reading the pool.
		backoff := s.baseBackoff * time.Duration(attempt+1)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", ErrTransientAllocation
}

// availableNicknames returns pool entries not yet held by a paid application
// of the same event and category.
func (s *NicknameService) availableNicknames(ctx context.Context, eventID uint, category string, pool []string) ([]string, error) {
	apps, err := s.apps.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(pool))
	for i := range apps {
		a := &apps[i]
		if a.Status == models.StatusPaid && a.Gender == category && a.Nickname != "" {
			used[a.Nickname] = true
		}
	}

	available := make([]string, 0, len(pool))
	for _, name := range pool {
		if !used[name] {
			available = append(available, name)
		}
	}
	return available, nil
}

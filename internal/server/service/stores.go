package service

import (
	"context"

	"rotape-service/internal/ports/models"
)

// Store ports consumed by the services. The MySQL implementations live in
// internal/server/repository; tests supply in-memory fakes. Lookups return
// (nil, nil) when no record exists.

// EventStore reads event records
type EventStore interface {
	GetByID(ctx context.Context, id uint) (*models.Event, error)
}

// ApplicationStore reads and writes admission records.
//
// CompareAndSetNickname atomically sets the nickname of the application
// identified by appKey to next, provided its current nickname equals expected
// and next is not already held by another paid application of the same event
// and gender. It returns false without error when either check fails.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByKey(ctx context.Context, appKey string) (*models.Application, error)
	GetByEventAndUID(ctx context.Context, eventID, uid uint) (*models.Application, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, appKey, status string) error
	CompareAndSetNickname(ctx context.Context, appKey, expected, next string) (bool, error)
}

// PreferenceStore persists the ranked-choice ledger. Put upserts on the
// (event, voter) key; ListByEvent returns records ordered by creation time
// then voter id so match resolution is deterministic.
type PreferenceStore interface {
	Put(ctx context.Context, pref *models.Preference) error
	GetByEventAndVoter(ctx context.Context, eventID, voterID uint) (*models.Preference, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Preference, error)
}

// MatchStore persists the latest resolution snapshot per event
type MatchStore interface {
	ReplaceForEvent(ctx context.Context, eventID uint, pairs []models.MatchPair) error
	ListByEvent(ctx context.Context, eventID uint) ([]models.MatchPair, error)
}

// TallyCache caches derived vote tallies keyed by event
type TallyCache interface {
	Get(ctx context.Context, eventID uint) (*models.VoteTally, error)
	Set(ctx context.Context, tally models.VoteTally) error
}

// UserStore reads and writes accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

package service

import (
	"context"

	"rotape-service/internal/ports/models"

	"github.com/google/uuid"
)

type ApplicationService struct {
	events EventStore
	apps   ApplicationStore
}

func NewApplicationService(events EventStore, apps ApplicationStore) *ApplicationService {
	return &ApplicationService{events: events, apps: apps}
}

// Apply creates a pending admission record for the user. One application per
// (event, user); applying twice returns the existing record.
func (s *ApplicationService) Apply(ctx context.Context, eventID, uid uint, gender string) (*models.Application, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	existing, err := s.apps.GetByEventAndUID(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	app := &models.Application{
		AppKey:  uuid.NewString(),
		EventID: eventID,
		UID:     uid,
		Gender:  gender,
		Status:  models.StatusPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Get returns the user's own application for an event
func (s *ApplicationService) Get(ctx context.Context, eventID, uid uint) (*models.Application, error) {
	app, err := s.apps.GetByEventAndUID(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return app, nil
}

// UpdateStatus applies an organizer review transition. Only the transitions
// allowed by models.ValidStatusTransition go through.
func (s *ApplicationService) UpdateStatus(ctx context.Context, eventID uint, appKey, next string) (*models.Application, error) {
	app, err := s.apps.GetByKey(ctx, appKey)
	if err != nil {
		return nil, err
	}
	if app == nil || app.EventID != eventID {
		return nil, ErrNotFound
	}
	if !models.ValidStatusTransition(app.Status, next) {
		return nil, invalid("status", "cannot move from "+app.Status+" to "+next)
	}
	if err := s.apps.UpdateStatus(ctx, appKey, next); err != nil {
		return nil, err
	}
	app.Status = next
	return app, nil
}

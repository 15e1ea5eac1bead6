package service

import (
	"context"
	"sync"

	"rotape-service/internal/ports/models"
)

// In-memory store fakes used across the service tests. The application fake
// honors the CompareAndSetNickname contract under a mutex, which is what the
// MySQL repository provides with row locks.

type fakeEventStore struct {
	events map[uint]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uint]*models.Event)}
}

func (s *fakeEventStore) GetByID(_ context.Context, id uint) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

type fakeAppStore struct {
	mu     sync.Mutex
	apps   map[string]*models.Application
	writes int
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: make(map[string]*models.Application)}
}

func (s *fakeAppStore) add(app models.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := app
	s.apps[app.AppKey] = &stored
}

func (s *fakeAppStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *app
	s.apps[app.AppKey] = &stored
	s.writes++
	return nil
}

func (s *fakeAppStore) GetByKey(_ context.Context, appKey string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[appKey]
	if !ok {
		return nil, nil
	}
	copied := *app
	return &copied, nil
}

func (s *fakeAppStore) GetByEventAndUID(_ context.Context, eventID, uid uint) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.apps {
		if app.EventID == eventID && app.UID == uid {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAppStore) ListByEvent(_ context.Context, eventID uint) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var apps []models.Application
	for _, app := range s.apps {
		if app.EventID == eventID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (s *fakeAppStore) UpdateStatus(_ context.Context, appKey, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app, ok := s.apps[appKey]; ok {
		app.Status = status
		s.writes++
	}
	return nil
}

func (s *fakeAppStore) CompareAndSetNickname(_ context.Context, appKey, expected, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[appKey]
	if !ok || app.Nickname != expected {
		return false, nil
	}
	for _, other := range s.apps {
		if other.AppKey == appKey {
			continue
		}
		if other.EventID == app.EventID && other.Gender == app.Gender &&
			other.Status == models.StatusPaid && other.Nickname == next {
			return false, nil
		}
	}
	app.Nickname = next
	s.writes++
	return true, nil
}

type fakePrefStore struct {
	mu    sync.Mutex
	prefs []models.Preference
}

func newFakePrefStore() *fakePrefStore {
	return &fakePrefStore{}
}

func (s *fakePrefStore) Put(_ context.Context, pref *models.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.prefs {
		if s.prefs[i].EventID == pref.EventID && s.prefs[i].VoterID == pref.VoterID {
			s.prefs[i] = *pref
			return nil
		}
	}
	s.prefs = append(s.prefs, *pref)
	return nil
}

func (s *fakePrefStore) GetByEventAndVoter(_ context.Context, eventID, voterID uint) (*models.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.prefs {
		if s.prefs[i].EventID == eventID && s.prefs[i].VoterID == voterID {
			copied := s.prefs[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakePrefStore) ListByEvent(_ context.Context, eventID uint) ([]models.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Preference
	for i := range s.prefs {
		if s.prefs[i].EventID == eventID {
			out = append(out, s.prefs[i])
		}
	}
	return out, nil
}

type fakeMatchStore struct {
	mu    sync.Mutex
	pairs map[uint][]models.MatchPair
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{pairs: make(map[uint][]models.MatchPair)}
}

func (s *fakeMatchStore) ReplaceForEvent(_ context.Context, eventID uint, pairs []models.MatchPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[eventID] = append([]models.MatchPair(nil), pairs...)
	return nil
}

func (s *fakeMatchStore) ListByEvent(_ context.Context, eventID uint) ([]models.MatchPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.MatchPair(nil), s.pairs[eventID]...), nil
}

type fakeTallyCache struct {
	mu      sync.Mutex
	tallies map[uint]models.VoteTally
	sets    int
}

func newFakeTallyCache() *fakeTallyCache {
	return &fakeTallyCache{tallies: make(map[uint]models.VoteTally)}
}

func (c *fakeTallyCache) Get(_ context.Context, eventID uint) (*models.VoteTally, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tally, ok := c.tallies[eventID]
	if !ok {
		return nil, nil
	}
	return &tally, nil
}

func (c *fakeTallyCache) Set(_ context.Context, tally models.VoteTally) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tallies[tally.EventID] = tally
	c.sets++
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	seq   uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	user.ID = s.seq
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"rotape-service/internal/ports/models"
)

func newTestNicknameService(apps *fakeAppStore) *NicknameService {
	s := NewNicknameService(apps)
	s.baseBackoff = time.Millisecond
	return s
}

func paidApp(key string, eventID, uid uint, gender, nickname string) models.Application {
	return models.Application{
		AppKey:   key,
		EventID:  eventID,
		UID:      uid,
		Gender:   gender,
		Status:   models.StatusPaid,
		Nickname: nickname,
	}
}

func TestAssignNickname(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsFromPool", func(t *testing.T) {
		apps := newFakeAppStore()
		apps.add(paidApp("k1", 1, 1, models.GenderMale, ""))

		svc := newTestNicknameService(apps)
		name, err := svc.Assign(ctx, "k1", 1, models.GenderMale)
		if err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		found := false
		for _, pooled := range nicknamePools[models.GenderMale] {
			if pooled == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Assigned nickname %q is not in the male pool", name)
		}
	})

	t.Run("IdempotentReassignment", func(t *testing.T) {
		apps := newFakeAppStore()
		apps.add(paidApp("k1", 1, 1, models.GenderFemale, "Rose"))
		svc := newTestNicknameService(apps)

		writesBefore := apps.writes
		for i := 0; i < 2; i++ {
			name, err := svc.Assign(ctx, "k1", 1, models.GenderFemale)
			if err != nil {
				t.Fatalf("Assign failed: %v", err)
			}
			if name != "Rose" {
				t.Errorf("Expected existing nickname Rose, got %q", name)
			}
		}
		if apps.writes != writesBefore {
			t.Errorf("Idempotent reassignment must not write, got %d extra writes", apps.writes-writesBefore)
		}
	})

	t.Run("PoolExhaustion", func(t *testing.T) {
		apps := newFakeAppStore()
		for i, name := range nicknamePools[models.GenderMale] {
			apps.add(paidApp(fmt.Sprintf("named-%d", i), 1, uint(i+1), models.GenderMale, name))
		}
		apps.add(paidApp("ninth", 1, 9, models.GenderMale, ""))

		svc := newTestNicknameService(apps)
		_, err := svc.Assign(ctx, "ninth", 1, models.GenderMale)
		if !errors.Is(err, ErrPoolExhausted) {
			t.Errorf("Expected ErrPoolExhausted, got %v", err)
		}
	})

	t.Run("PoolScopedPerEvent", func(t *testing.T) {
		apps := newFakeAppStore()
		for i, name := range nicknamePools[models.GenderMale] {
			apps.add(paidApp(fmt.Sprintf("other-%d", i), 2, uint(i+1), models.GenderMale, name))
		}
		apps.add(paidApp("k1", 1, 20, models.GenderMale, ""))

		svc := newTestNicknameService(apps)
		if _, err := svc.Assign(ctx, "k1", 1, models.GenderMale); err != nil {
			t.Errorf("A full pool in another event must not block assignment: %v", err)
		}
	})

	t.Run("EightSequentialThenExhausted", func(t *testing.T) {
		apps := newFakeAppStore()
		for i := 1; i <= 9; i++ {
			apps.add(paidApp(fmt.Sprintf("k%d", i), 1, uint(i), models.GenderFemale, ""))
		}
		svc := newTestNicknameService(apps)

		assigned := make(map[string]bool)
		for i := 1; i <= 8; i++ {
			name, err := svc.Assign(ctx, fmt.Sprintf("k%d", i), 1, models.GenderFemale)
			if err != nil {
				t.Fatalf("Assignment %d failed: %v", i, err)
			}
			if assigned[name] {
				t.Errorf("Nickname %q assigned twice", name)
			}
			assigned[name] = true
		}

		_, err := svc.Assign(ctx, "k9", 1, models.GenderFemale)
		if !errors.Is(err, ErrPoolExhausted) {
			t.Errorf("Expected ErrPoolExhausted on the 9th assignment, got %v", err)
		}
	})

	t.Run("UniqueUnderConcurrency", func(t *testing.T) {
		apps := newFakeAppStore()
		numParticipants := 8
		for i := 1; i <= numParticipants; i++ {
			apps.add(paidApp(fmt.Sprintf("k%d", i), 1, uint(i), models.GenderMale, ""))
		}
		svc := newTestNicknameService(apps)

		var wg sync.WaitGroup
		errs := make([]error, numParticipants)
		for i := 0; i < numParticipants; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				_, errs[idx] = svc.Assign(ctx, fmt.Sprintf("k%d", idx+1), 1, models.GenderMale)
			}(i)
		}
		wg.Wait()

		// Losing every retry is permitted, any other error is not.
		for i, err := range errs {
			if err != nil && !errors.Is(err, ErrTransientAllocation) {
				t.Errorf("Participant %d got unexpected error: %v", i+1, err)
			}
		}

		// The real property: no two paid applications hold the same name.
		list, _ := apps.ListByEvent(ctx, 1)
		seen := make(map[string]string)
		for _, app := range list {
			if app.Nickname == "" {
				continue
			}
			if holder, dup := seen[app.Nickname]; dup {
				t.Errorf("Nickname %q held by both %s and %s", app.Nickname, holder, app.AppKey)
			}
			seen[app.Nickname] = app.AppKey
		}
	})

	t.Run("RejectsUnpaidApplications", func(t *testing.T) {
		apps := newFakeAppStore()
		pool := nicknamePools[models.GenderMale]
		for i, name := range pool[:len(pool)-1] {
			apps.add(paidApp(fmt.Sprintf("named-%d", i), 1, uint(i+1), models.GenderMale, name))
		}
		for i, key := range []string{"p1", "p2"} {
			app := paidApp(key, 1, uint(len(pool)+i+1), models.GenderMale, "")
			app.Status = models.StatusPending
			apps.add(app)
		}
		svc := newTestNicknameService(apps)

		// Unpaid holders are invisible to the availability scan and the
		// commit guard, so letting these through would hand both the one
		// remaining name.
		for _, key := range []string{"p1", "p2"} {
			_, err := svc.Assign(ctx, key, 1, models.GenderMale)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError for unpaid application %s, got %v", key, err)
			}
		}
		list, _ := apps.ListByEvent(ctx, 1)
		for _, app := range list {
			if app.Status != models.StatusPaid && app.Nickname != "" {
				t.Errorf("Unpaid application %s must not hold a nickname, got %q", app.AppKey, app.Nickname)
			}
		}
	})

	t.Run("UnknownApplication", func(t *testing.T) {
		svc := newTestNicknameService(newFakeAppStore())
		_, err := svc.Assign(ctx, "missing", 1, models.GenderMale)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("EventMismatch", func(t *testing.T) {
		apps := newFakeAppStore()
		apps.add(paidApp("k1", 2, 1, models.GenderMale, ""))
		svc := newTestNicknameService(apps)

		_, err := svc.Assign(ctx, "k1", 1, models.GenderMale)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong event, got %v", err)
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		apps := newFakeAppStore()
		apps.add(paidApp("k1", 1, 1, models.GenderMale, ""))
		svc := newTestNicknameService(apps)

		_, err := svc.Assign(ctx, "k1", 1, "robot")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})
}

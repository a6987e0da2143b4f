package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/testutil"
)

func TestProfileRepositoryGetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewProfileRepository(client)

	if _, err := repo.Get(ctx, "plan-1"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("Get() error = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileRepositorySaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewProfileRepository(client)

	profile := domain.NewBehaviorProfile("plan-1")
	profile.RecordResponse(domain.ResponseTaken, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	profile.QuietWindows = []domain.QuietWindow{{StartHour: 22, EndHour: 6}}

	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, "plan-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DataPoints != 1 {
		t.Errorf("DataPoints = %d, want 1", got.DataPoints)
	}
	if got.HourScores[9] != profile.HourScores[9] {
		t.Errorf("HourScores[9] = %f, want %f", got.HourScores[9], profile.HourScores[9])
	}
	if len(got.QuietWindows) != 1 || got.QuietWindows[0].StartHour != 22 {
		t.Errorf("QuietWindows = %v, want the saved window", got.QuietWindows)
	}
}

func TestProfileRepositorySaveInvalid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewProfileRepository(client)

	if err := repo.Save(ctx, &domain.BehaviorProfile{}); !errors.Is(err, ErrInvalidProfileData) {
		t.Errorf("Save() error = %v, want ErrInvalidProfileData", err)
	}
}

func TestProfileRepositoryDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewProfileRepository(client)

	profile := domain.NewBehaviorProfile("plan-1")
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.Delete(ctx, "plan-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "plan-1"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrProfileNotFound", err)
	}

	// Deleting an absent profile is not an error.
	if err := repo.Delete(ctx, "plan-1"); err != nil {
		t.Errorf("Delete() repeat error = %v, want nil", err)
	}
}

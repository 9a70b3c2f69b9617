package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/mood"
)

func seedLog(t *testing.T, db *gorm.DB, userID string, c mood.Category, l mood.Label, date time.Time, at time.Time) {
	t.Helper()
	err := db.Create(&domain.MoodLog{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: c,
		Mood:     l,
		LogDate:  date,
		LoggedAt: at,
	}).Error
	if err != nil {
		t.Fatalf("seed log: %v", err)
	}
}

func TestListLogsBefore_ExcludesCutoffAndOtherUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cutoff := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	seedLog(t, db, "u1", mood.Activity, mood.Happy, cutoff.AddDate(0, 0, -7), cutoff.AddDate(0, 0, -7).Add(9*time.Hour))
	seedLog(t, db, "u1", mood.Sleep, mood.Calm, cutoff.AddDate(0, 0, -1), cutoff.AddDate(0, 0, -1).Add(8*time.Hour))
	seedLog(t, db, "u1", mood.Health, mood.Sad, cutoff, cutoff.Add(10*time.Hour))                  // on cutoff -> excluded
	seedLog(t, db, "u2", mood.Activity, mood.Tense, cutoff.AddDate(0, 0, -2), cutoff.Add(-48*time.Hour)) // other user

	logs, err := ListLogsBefore(ctx, db, "u1", cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if !logs[0].LogDate.Before(logs[1].LogDate) {
		t.Fatal("logs not ordered by date")
	}
}

func TestListLogsBetween_InclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	seedLog(t, db, "u1", mood.Activity, mood.Happy, from, from.Add(9*time.Hour))
	seedLog(t, db, "u1", mood.Activity, mood.Calm, to, to.Add(20*time.Hour))
	seedLog(t, db, "u1", mood.Activity, mood.Sad, from.AddDate(0, 0, -1), from.Add(-4*time.Hour))
	seedLog(t, db, "u1", mood.Activity, mood.Tense, to.AddDate(0, 0, 1), to.Add(30*time.Hour))

	logs, err := ListLogsBetween(ctx, db, "u1", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs within bounds, got %d", len(logs))
	}
}

func TestDistinctLogUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedLog(t, db, "ada", mood.Activity, mood.Happy, day, day.Add(time.Hour))
	seedLog(t, db, "ada", mood.Sleep, mood.Calm, day, day.Add(2*time.Hour))
	seedLog(t, db, "bob", mood.Social, mood.Bored, day, day.Add(3*time.Hour))

	users, err := DistinctLogUsers(ctx, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0] != "ada" || users[1] != "bob" {
		t.Fatalf("expected [ada bob], got %v", users)
	}
}

func TestDistinctLogUsers_Empty(t *testing.T) {
	db := newTestDB(t)
	users, err := DistinctLogUsers(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %v", users)
	}
}

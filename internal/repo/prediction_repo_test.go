package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/mood"
)

func newWeekRecord(userID string, weekStart time.Time) *domain.WeeklyPrediction {
	year, wk := weekStart.ISOWeek()
	return &domain.WeeklyPrediction{
		UserID:        userID,
		Year:          year,
		WeekNumber:    wk,
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 6),
		Predictions:   domain.NewPredictionMatrix(),
	}
}

func TestWeeklyPrediction_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	rec := newWeekRecord("u1", weekStart)
	happy := mood.Happy
	rec.Predictions.Cell(mood.Activity, mood.Monday).PredictedMood = &happy
	rec.Predictions.Cell(mood.Activity, mood.Monday).AllMoodProbabilities = mood.Distribution(nil, 1)

	if err := CreateWeeklyPrediction(ctx, db, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := GetWeeklyPrediction(ctx, db, "u1", rec.Year, rec.WeekNumber)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	cell := got.Predictions.Cell(mood.Activity, mood.Monday)
	if cell.PredictedMood == nil || *cell.PredictedMood != mood.Happy {
		t.Fatal("matrix did not survive persistence")
	}
	if len(cell.AllMoodProbabilities) != 10 {
		t.Fatalf("expected 10 probabilities, got %d", len(cell.AllMoodProbabilities))
	}
}

func TestWeeklyPrediction_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := GetWeeklyPrediction(context.Background(), db, "ghost", 2024, 10)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyPrediction_UniquePerUserWeek(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	if err := CreateWeeklyPrediction(ctx, db, newWeekRecord("u1", weekStart)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := CreateWeeklyPrediction(ctx, db, newWeekRecord("u1", weekStart)); err == nil {
		t.Fatal("expected unique index violation for same user/week")
	}
	// A different user may hold the same week.
	if err := CreateWeeklyPrediction(ctx, db, newWeekRecord("u2", weekStart)); err != nil {
		t.Fatalf("different user: %v", err)
	}
}

func TestWeeklyPrediction_SaveUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	rec := newWeekRecord("u1", weekStart)
	if err := CreateWeeklyPrediction(ctx, db, rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	pleased := mood.Pleased
	rec.Predictions.Cell(mood.Sleep, mood.Sunday).ActualMood = &pleased
	rec.IsCompleted = true
	if err := SaveWeeklyPrediction(ctx, db, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := GetWeeklyPrediction(ctx, db, "u1", rec.Year, rec.WeekNumber)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Predictions.Cell(mood.Sleep, mood.Sunday).ActualMood == nil {
		t.Fatal("actual mood not persisted")
	}
	if !got.IsCompleted {
		t.Fatal("is_completed not persisted")
	}

	var count int64
	db.Model(&domain.WeeklyPrediction{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestListWeekPredictions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	weekA := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	weekB := weekA.AddDate(0, 0, 7)

	for _, u := range []string{"zoe", "ada"} {
		if err := CreateWeeklyPrediction(ctx, db, newWeekRecord(u, weekA)); err != nil {
			t.Fatalf("create %s: %v", u, err)
		}
	}
	if err := CreateWeeklyPrediction(ctx, db, newWeekRecord("ada", weekB)); err != nil {
		t.Fatalf("create weekB: %v", err)
	}

	recs, err := ListWeekPredictions(ctx, db, weekA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records for weekA, got %d", len(recs))
	}
	if recs[0].UserID != "ada" || recs[1].UserID != "zoe" {
		t.Fatalf("expected user-ordered records, got %s,%s", recs[0].UserID, recs[1].UserID)
	}
}

func TestListWeeks_CountsUsersPerWeek(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	weekA := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	weekB := weekA.AddDate(0, 0, 7)

	for _, u := range []string{"u1", "u2", "u3"} {
		if err := CreateWeeklyPrediction(ctx, db, newWeekRecord(u, weekA)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := CreateWeeklyPrediction(ctx, db, newWeekRecord("u1", weekB)); err != nil {
		t.Fatalf("create: %v", err)
	}

	weeks, err := ListWeeks(ctx, db)
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	// Most recent first.
	if weeks[0].UserCount != 1 || weeks[1].UserCount != 3 {
		t.Fatalf("unexpected counts: %+v", weeks)
	}
	_, wantWeek := weekB.ISOWeek()
	if weeks[0].WeekNumber != wantWeek {
		t.Fatalf("expected week number %d, got %d", wantWeek, weeks[0].WeekNumber)
	}
}

func TestListWeeks_Empty(t *testing.T) {
	db := newTestDB(t)
	weeks, err := ListWeeks(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 0 {
		t.Fatalf("expected no weeks, got %v", weeks)
	}
}

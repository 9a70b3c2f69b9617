package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/mood"
	"github.com/forborealis/mindful-map-backend/internal/repo"
)

// skewedProbs returns a distribution with a known ranking: happy .5, calm .3,
// sad .1 and the rest sharing the remainder far below.
func skewedProbs() map[mood.Label]float64 {
	probs := map[mood.Label]float64{
		mood.Happy: 0.50,
		mood.Calm:  0.30,
		mood.Sad:   0.10,
	}
	rest := 0.10 / 7
	for _, l := range mood.Labels() {
		if _, ok := probs[l]; !ok {
			probs[l] = rest
		}
	}
	return probs
}

// seedComparisonRecord creates a record whose Monday/activity cell carries
// the skewed distribution and the given outcome.
func seedComparisonRecord(t *testing.T, db *gorm.DB, userID string, actual mood.Label) {
	t.Helper()

	matrix := domain.NewPredictionMatrix()
	cell := matrix.Cell(mood.Activity, mood.Monday)
	predicted := mood.Happy
	cell.PredictedMood = &predicted
	cell.AllMoodProbabilities = skewedProbs()
	a := actual
	cell.ActualMood = &a

	year, weekNumber := 2025, 23
	err := repo.CreateWeeklyPrediction(context.Background(), db, &domain.WeeklyPrediction{
		UserID:        userID,
		Year:          year,
		WeekNumber:    weekNumber,
		WeekStartDate: testWeek,
		WeekEndDate:   testWeek.AddDate(0, 0, 6),
		Predictions:   matrix,
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestCompare_TierClassification(t *testing.T) {
	db := newTestDB(t)
	svc := &ComparisonService{DB: db}

	seedComparisonRecord(t, db, "u1", mood.Happy) // rank 1
	seedComparisonRecord(t, db, "u2", mood.Calm)  // rank 2
	seedComparisonRecord(t, db, "u3", mood.Sad)   // rank 3
	seedComparisonRecord(t, db, "u4", mood.Tense) // rank 4+

	report, err := svc.Compare(context.Background(), testWeek)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if report.Users != 4 {
		t.Fatalf("expected 4 users, got %d", report.Users)
	}

	counts := report.DailyComparison[mood.Monday].Categories[mood.Activity]
	if counts.Top1Matches != 1 || counts.Top2Matches != 1 || counts.Top3Matches != 1 || counts.MissedPredictions != 1 {
		t.Fatalf("unexpected tier counts: %+v", counts)
	}
	if counts.TotalPredictions != 4 {
		t.Fatalf("expected 4 total predictions, got %d", counts.TotalPredictions)
	}
	if counts.Top1Matches+counts.Top2Matches+counts.Top3Matches+counts.MissedPredictions != counts.TotalPredictions {
		t.Fatal("tier counts must sum to the total")
	}
}

func TestCompare_NoDataIsDistinctFromZeroAccuracy(t *testing.T) {
	db := newTestDB(t)
	svc := &ComparisonService{DB: db}

	seedComparisonRecord(t, db, "u1", mood.Tense) // a miss on Monday/activity

	report, err := svc.Compare(context.Background(), testWeek)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	missed := report.DailyComparison[mood.Monday].Categories[mood.Activity]
	if missed.TotalPredictions != 1 || missed.MissedPredictions != 1 {
		t.Fatalf("expected one miss, got %+v", missed)
	}

	// Tuesday/activity had no outcome anywhere: total 0 signals "no data",
	// not "all missed".
	empty := report.DailyComparison[mood.Tuesday].Categories[mood.Activity]
	if empty.TotalPredictions != 0 || empty.MissedPredictions != 0 {
		t.Fatalf("slot without outcomes must report zero totals, got %+v", empty)
	}

	// The full grid is present even for untouched weekdays.
	for _, d := range mood.Weekdays() {
		day, ok := report.DailyComparison[d]
		if !ok {
			t.Fatalf("missing weekday %s in report", d)
		}
		for _, c := range mood.Categories() {
			if _, ok := day.Categories[c]; !ok {
				t.Fatalf("missing category %s for %s", c, d)
			}
		}
	}
}

func TestCompare_SkipsPendingCells(t *testing.T) {
	db := newTestDB(t)
	svc := &ComparisonService{DB: db}

	// Record with predictions but no outcomes at all.
	matrix := domain.NewPredictionMatrix()
	for _, c := range mood.Categories() {
		for _, d := range mood.Weekdays() {
			predicted := mood.Happy
			cell := matrix.Cell(c, d)
			cell.PredictedMood = &predicted
			cell.AllMoodProbabilities = skewedProbs()
		}
	}
	err := repo.CreateWeeklyPrediction(context.Background(), db, &domain.WeeklyPrediction{
		UserID:        "u1",
		Year:          2025,
		WeekNumber:    23,
		WeekStartDate: testWeek,
		WeekEndDate:   testWeek.AddDate(0, 0, 6),
		Predictions:   matrix,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := svc.Compare(context.Background(), testWeek)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	for _, d := range mood.Weekdays() {
		for _, c := range mood.Categories() {
			if got := report.DailyComparison[d].Categories[c].TotalPredictions; got != 0 {
				t.Fatalf("pending cells must not be counted, got %d for %s/%s", got, c, d)
			}
		}
	}
}

func TestCompare_RejectsNonMonday(t *testing.T) {
	db := newTestDB(t)
	svc := &ComparisonService{DB: db}

	_, err := svc.Compare(context.Background(), testWeek.AddDate(0, 0, 5))
	if !errors.Is(err, ErrInvalidWeekStart) {
		t.Fatalf("expected ErrInvalidWeekStart, got %v", err)
	}
}

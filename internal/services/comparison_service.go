// Package services – ComparisonService
//
// This file implements ComparisonService, the read-only aggregation behind
// the admin dashboard: for one week it classifies every observed cell of
// every user's prediction record into a match tier and counts the tiers per
// weekday and category.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/mood"
	"github.com/forborealis/mindful-map-backend/internal/repo"
	"github.com/forborealis/mindful-map-backend/internal/week"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TierCounts aggregates the match tiers of one (weekday, category) slot
// across all users of a week. The four tier counts always sum to
// TotalPredictions; a slot nobody has an outcome for reports all zeroes,
// which callers must distinguish from a slot with outcomes and zero top-1
// hits.
type TierCounts struct {
	Top1Matches       int `json:"top1Matches"`
	Top2Matches       int `json:"top2Matches"`
	Top3Matches       int `json:"top3Matches"`
	MissedPredictions int `json:"missedPredictions"`
	TotalPredictions  int `json:"totalPredictions"`
}

// WeekdayComparison groups one weekday's tier counts by category.
type WeekdayComparison struct {
	Categories map[mood.Category]*TierCounts `json:"categories"`
}

// ComparisonReport is the full per-weekday, per-category aggregate of one
// week. Every weekday and category is present even when no outcomes exist.
type ComparisonReport struct {
	WeekStartDate   time.Time                           `json:"week_start_date"`
	DailyComparison map[mood.Weekday]*WeekdayComparison `json:"dailyComparison"`
	Users           int                                 `json:"users"`
}

// ComparisonService aggregates prediction outcomes across users.
type ComparisonService struct {
	// DB is the GORM handle used for the read-only week scan.
	DB *gorm.DB
}

// Weeks lists every week that has prediction records, most recent first,
// with the number of users covered. This feeds the admin week picker.
func (s *ComparisonService) Weeks(ctx context.Context) ([]repo.WeekSummary, error) {
	return repo.ListWeeks(ctx, s.DB)
}

// Compare builds the tier-count aggregate for the week starting at
// weekStart. Cells without a recorded actual mood are skipped; they are
// pending outcomes, not misses.
func (s *ComparisonService) Compare(ctx context.Context, weekStart time.Time) (*ComparisonReport, error) {
	tr := otel.Tracer("services/ComparisonService")
	ctx, span := tr.Start(ctx, "Compare",
		trace.WithAttributes(attribute.String("week.start", weekStart.Format(week.DateLayout))),
	)
	defer span.End()

	weekStart = week.Truncate(weekStart)
	if weekStart.Weekday() != time.Monday {
		return nil, ErrInvalidWeekStart
	}

	recs, err := repo.ListWeekPredictions(ctx, s.DB, weekStart)
	if err != nil {
		return nil, err
	}

	report := &ComparisonReport{
		WeekStartDate:   weekStart,
		DailyComparison: make(map[mood.Weekday]*WeekdayComparison, len(mood.Weekdays())),
		Users:           len(recs),
	}
	for _, d := range mood.Weekdays() {
		byCategory := make(map[mood.Category]*TierCounts, len(mood.Categories()))
		for _, c := range mood.Categories() {
			byCategory[c] = &TierCounts{}
		}
		report.DailyComparison[d] = &WeekdayComparison{Categories: byCategory}
	}

	for i := range recs {
		for _, d := range mood.Weekdays() {
			for _, c := range mood.Categories() {
				cell := recs[i].Predictions.Cell(c, d)
				if cell.ActualMood == nil {
					continue
				}
				counts := report.DailyComparison[d].Categories[c]
				counts.TotalPredictions++
				switch mood.Classify(cell.AllMoodProbabilities, *cell.ActualMood) {
				case mood.TierTop1:
					counts.Top1Matches++
				case mood.TierTop2:
					counts.Top2Matches++
				case mood.TierTop3:
					counts.Top3Matches++
				default:
					counts.MissedPredictions++
				}
			}
		}
	}
	return report, nil
}

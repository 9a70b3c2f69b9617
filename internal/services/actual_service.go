// Package services – ActualService
//
// This file implements ActualService, which fills in the ground truth of a
// prediction week: for every (category, weekday) cell whose calendar day has
// elapsed, it collapses that day's logged moods into one representative label
// and writes it into the cell. Future cells are never touched, and a filled
// cell is never regressed to empty.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/mood"
	"github.com/forborealis/mindful-map-backend/internal/repo"
	"github.com/forborealis/mindful-map-backend/internal/week"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ActualService records actual moods into existing weekly prediction records.
type ActualService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// History is the mood-log reader providing the week's ground truth.
	History HistoryReader

	// Workers bounds concurrent per-record jobs in a batch run.
	Workers int
	// UserTimeout timeboxes each record's update inside a batch run.
	UserTimeout time.Duration
}

// RecordWeek updates the actual moods of every user's record for the week
// starting at weekStart. Records are processed concurrently up to the worker
// bound; per-user failures land in the summary without aborting the run.
//
// Only cells whose calendar day lies strictly before today receive a value:
// today's logs may still change, and future days have no ground truth yet.
// Re-running is safe; a cell whose logs disappeared keeps its recorded value.
func (s *ActualService) RecordWeek(ctx context.Context, weekStart time.Time) (*BatchSummary, error) {
	tr := otel.Tracer("services/ActualService")
	ctx, span := tr.Start(ctx, "RecordWeek",
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
	today := week.Truncate(timeNow().UTC())

	byUser := make(map[string]*domain.WeeklyPrediction, len(recs))
	users := make([]string, 0, len(recs))
	for i := range recs {
		byUser[recs[i].UserID] = &recs[i]
		users = append(users, recs[i].UserID)
	}

	start := timeNow()
	summary := fanOut(ctx, users, s.Workers, s.UserTimeout, func(uctx context.Context, userID string) error {
		return s.recordUser(uctx, byUser[userID], today)
	})
	summary.WeekStartDate = weekStart
	summary.Duration = timeNow().Sub(start)

	if err := recordBatchRun(ctx, s.DB, domain.BatchKindActuals, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// recordUser fills the elapsed cells of one record and persists the result.
func (s *ActualService) recordUser(ctx context.Context, rec *domain.WeeklyPrediction, today time.Time) error {
	logs, err := s.History.ListLogsBetween(ctx, s.DB, rec.UserID, rec.WeekStartDate, rec.WeekEndDate)
	if err != nil {
		return err
	}

	type dayKey struct {
		category mood.Category
		day      mood.Weekday
	}
	obs := make(map[dayKey][]mood.Observation)
	for _, l := range logs {
		if !mood.ValidCategory(l.Category) || !mood.ValidLabel(l.Mood) {
			continue
		}
		k := dayKey{category: l.Category, day: mood.WeekdayOf(l.LogDate)}
		obs[k] = append(obs[k], mood.Observation{Label: l.Mood, LoggedAt: l.LoggedAt})
	}

	var filled int
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		filled = 0
		for _, d := range mood.Weekdays() {
			day := week.DayOf(rec.WeekStartDate, d.Offset())
			if !day.Before(today) {
				continue
			}
			for _, c := range mood.Categories() {
				label := mood.Representative(obs[dayKey{category: c, day: d}])
				if label == "" {
					continue
				}
				cell := rec.Predictions.Cell(c, d)
				if cell.ActualMood == nil {
					filled++
				}
				actual := label
				cell.ActualMood = &actual
			}
		}
		rec.IsCompleted = rec.Predictions.Completed(rec.WeekStartDate, today)
		return repo.SaveWeeklyPrediction(ctx, tx, rec)
	})
	if err != nil {
		return err
	}
	actualCellsRecorded.Add(float64(filled))
	return nil
}

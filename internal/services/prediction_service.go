// Package services – PredictionService
//
// This file implements PredictionService, which turns a user's mood history
// into the weekly prediction matrix: a smoothed probability distribution and
// a derived predicted label for every category × weekday cell. Writes are
// merge-on-write upserts keyed by (user, year, weekNumber), so regenerating a
// week can never erase an already-recorded outcome.
//
// Batch runs fan out over every user with mood history, bounded by a worker
// limit and a per-user timebox; one user's failure is recorded in the batch
// summary and never aborts the run.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the user identifier and the target week.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/mood"
	"github.com/forborealis/mindful-map-backend/internal/repo"
	"github.com/forborealis/mindful-map-backend/internal/week"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// timeNow is a seam for tests that need a fixed clock.
var timeNow = time.Now

// HistoryReader defines the read-only mood-log access required by the
// prediction and recording services. Implementations never write to the log.
type HistoryReader interface {
	// ListLogsBefore returns every log of userID dated strictly before cutoff.
	ListLogsBefore(ctx context.Context, db *gorm.DB, userID string, cutoff time.Time) ([]domain.MoodLog, error)

	// ListLogsBetween returns every log of userID dated within [from, to].
	ListLogsBetween(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) ([]domain.MoodLog, error)

	// DistinctLogUsers returns the identifiers of every user with at least
	// one mood log.
	DistinctLogUsers(ctx context.Context, db *gorm.DB) ([]string, error)
}

// UserFailure records one user's failure within a batch run.
type UserFailure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// BatchSummary is the outcome of one batch run: how many users were
// attempted, how many succeeded, and the per-user failures. Failures are
// sorted by user ID so summaries are stable across runs.
type BatchSummary struct {
	WeekStartDate time.Time     `json:"week_start_date"`
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	Failures      []UserFailure `json:"failures,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// PredictionService generates weekly prediction records from mood history.
type PredictionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// History is the mood-log reader feeding the distributions.
	History HistoryReader

	// Alpha is the additive smoothing constant (<= 0 falls back to the
	// package default).
	Alpha float64
	// Workers bounds concurrent per-user jobs in a batch run.
	Workers int
	// UserTimeout timeboxes each user's generation inside a batch run.
	UserTimeout time.Duration
}

// GenerateForUser computes the full category × weekday prediction matrix for
// one user and upserts the record for the week starting at weekStart. History
// is everything the user logged strictly before weekStart, grouped by
// category and weekday across all prior weeks.
//
// If a record for (user, year, weekNumber) already exists, only cells without
// a recorded ActualMood are updated; observed cells keep both their
// probabilities and their prediction.
func (s *PredictionService) GenerateForUser(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPrediction, error) {
	tr := otel.Tracer("services/PredictionService")
	ctx, span := tr.Start(ctx, "GenerateForUser",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("week.start", weekStart.Format(week.DateLayout)),
		),
	)
	defer span.End()

	weekStart = week.Truncate(weekStart)
	if weekStart.Weekday() != time.Monday {
		return nil, ErrInvalidWeekStart
	}

	logs, err := s.History.ListLogsBefore(ctx, s.DB, userID, weekStart)
	if err != nil {
		return nil, err
	}
	matrix := buildMatrix(logs, s.Alpha)

	year, weekNumber := week.ISO(weekStart)

	var out *domain.WeeklyPrediction
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := repo.GetWeeklyPrediction(ctx, tx, userID, year, weekNumber)
		switch {
		case err == nil:
			existing.Predictions.Merge(matrix)
			if err := repo.SaveWeeklyPrediction(ctx, tx, existing); err != nil {
				return err
			}
			out = existing
			return nil
		case errors.Is(err, repo.ErrNotFound):
			rec := &domain.WeeklyPrediction{
				UserID:        userID,
				Year:          year,
				WeekNumber:    weekNumber,
				WeekStartDate: weekStart,
				WeekEndDate:   week.EndOf(weekStart),
				Predictions:   matrix,
			}
			if cerr := repo.CreateWeeklyPrediction(ctx, tx, rec); cerr != nil {
				// A concurrent generator may have won the insert race;
				// fall back to merging into its row.
				if !isDuplicate(cerr) {
					return cerr
				}
				winner, gerr := repo.GetWeeklyPrediction(ctx, tx, userID, year, weekNumber)
				if gerr != nil {
					return gerr
				}
				winner.Predictions.Merge(matrix)
				if serr := repo.SaveWeeklyPrediction(ctx, tx, winner); serr != nil {
					return serr
				}
				out = winner
				return nil
			}
			out = rec
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	predictionsGenerated.Inc()
	return out, nil
}

// GenerateAll runs GenerateForUser for every user with mood history,
// targeting the week starting at weekStart. Users are processed concurrently
// up to the configured worker bound, each under its own timeout. Per-user
// failures are collected into the summary; the run itself fails only on
// invalid input or when the user population cannot be listed.
//
// The summary is also persisted as a BatchRun row for the admin run-history
// view.
func (s *PredictionService) GenerateAll(ctx context.Context, weekStart time.Time) (*BatchSummary, error) {
	tr := otel.Tracer("services/PredictionService")
	ctx, span := tr.Start(ctx, "GenerateAll",
		trace.WithAttributes(attribute.String("week.start", weekStart.Format(week.DateLayout))),
	)
	defer span.End()

	weekStart = week.Truncate(weekStart)
	if weekStart.Weekday() != time.Monday {
		return nil, ErrInvalidWeekStart
	}

	users, err := s.History.DistinctLogUsers(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	start := timeNow()
	summary := fanOut(ctx, users, s.Workers, s.UserTimeout, func(uctx context.Context, userID string) error {
		_, err := s.GenerateForUser(uctx, userID, weekStart)
		return err
	})
	summary.WeekStartDate = weekStart
	summary.Duration = timeNow().Sub(start)

	if err := recordBatchRun(ctx, s.DB, domain.BatchKindPredictions, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Runs returns the recorded batch runs of one kind, most recent first. A
// non-positive limit falls back to the repository default.
func (s *PredictionService) Runs(ctx context.Context, kind string, limit int) ([]domain.BatchRun, error) {
	return repo.ListBatchRuns(ctx, s.DB, kind, limit)
}

// fanOut applies job to every user concurrently, bounded by workers and
// timeboxed per user, and collects the outcome.
func fanOut(ctx context.Context, users []string, workers int, userTimeout time.Duration, job func(ctx context.Context, userID string) error) *BatchSummary {
	if workers < 1 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		failures []UserFailure
	)
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, userID := range users {
		userID := userID
		g.Go(func() error {
			uctx := ctx
			if userTimeout > 0 {
				var cancel context.CancelFunc
				uctx, cancel = context.WithTimeout(ctx, userTimeout)
				defer cancel()
			}
			if err := job(uctx, userID); err != nil {
				mu.Lock()
				failures = append(failures, UserFailure{UserID: userID, Reason: err.Error()})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // jobs never return errors; failures are collected above

	sort.Slice(failures, func(i, j int) bool { return failures[i].UserID < failures[j].UserID })
	return &BatchSummary{
		Total:     len(users),
		Succeeded: len(users) - len(failures),
		Failed:    len(failures),
		Failures:  failures,
	}
}

// buildMatrix groups logs by category and weekday and derives each cell's
// smoothed distribution and predicted label.
func buildMatrix(logs []domain.MoodLog, alpha float64) domain.PredictionMatrix {
	grouped := make(map[mood.Category]map[mood.Weekday][]mood.Label)
	for _, l := range logs {
		if !mood.ValidCategory(l.Category) || !mood.ValidLabel(l.Mood) {
			continue
		}
		day := mood.WeekdayOf(l.LogDate)
		row, ok := grouped[l.Category]
		if !ok {
			row = make(map[mood.Weekday][]mood.Label)
			grouped[l.Category] = row
		}
		row[day] = append(row[day], l.Mood)
	}

	matrix := domain.NewPredictionMatrix()
	for _, c := range mood.Categories() {
		for _, d := range mood.Weekdays() {
			probs := mood.Distribution(grouped[c][d], alpha)
			predicted := mood.Predict(probs)
			cell := matrix.Cell(c, d)
			cell.PredictedMood = &predicted
			cell.AllMoodProbabilities = probs
		}
	}
	return matrix
}

// recordBatchRun persists a batch summary as a BatchRun row. Failure details
// are capped so a pathological run cannot bloat the table.
func recordBatchRun(ctx context.Context, db *gorm.DB, kind string, summary *BatchSummary) error {
	const maxDetail = 4096

	parts := make([]string, 0, len(summary.Failures))
	for _, f := range summary.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.UserID, f.Reason))
	}
	detail := strings.Join(parts, "; ")
	if len(detail) > maxDetail {
		detail = detail[:maxDetail]
	}

	batchRuns.WithLabelValues(kind).Inc()
	return repo.CreateBatchRun(ctx, db, &domain.BatchRun{
		Kind:          kind,
		WeekStartDate: summary.WeekStartDate,
		Total:         summary.Total,
		Succeeded:     summary.Succeeded,
		Failed:        summary.Failed,
		FailureDetail: detail,
		Duration:      summary.Duration,
	})
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

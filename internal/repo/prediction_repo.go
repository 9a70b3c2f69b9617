// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for weekly
// prediction records.
//
// The repository follows a "thin" approach: it performs persistence and
// simple query composition, leaving the merge-on-write rules to the services
// package (which runs them inside a transaction around these calls).
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
)

// ErrNotFound is the repository-level sentinel for missing rows.
var ErrNotFound = gorm.ErrRecordNotFound

// GetWeeklyPrediction fetches the unique record for (userID, year, week).
// Returns ErrNotFound when the user has no record for that week.
func GetWeeklyPrediction(ctx context.Context, db *gorm.DB, userID string, year, week int) (*domain.WeeklyPrediction, error) {
	var rec domain.WeeklyPrediction
	err := db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND week_number = ?", userID, year, week).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// CreateWeeklyPrediction inserts a new record with a generated UUID. The
// (user_id, year, week_number) unique index rejects a second record for the
// same user and week; concurrent creators race to one winner and the loser
// falls back to the update path in the service layer.
func CreateWeeklyPrediction(ctx context.Context, db *gorm.DB, rec *domain.WeeklyPrediction) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return db.WithContext(ctx).Create(rec).Error
}

// SaveWeeklyPrediction persists an updated record in place, bumping
// UpdatedAt.
func SaveWeeklyPrediction(ctx context.Context, db *gorm.DB, rec *domain.WeeklyPrediction) error {
	rec.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Save(rec).Error
}

// ListWeekPredictions returns every user's record for the week starting at
// weekStart, ordered by user for deterministic aggregation.
func ListWeekPredictions(ctx context.Context, db *gorm.DB, weekStart time.Time) ([]domain.WeeklyPrediction, error) {
	var recs []domain.WeeklyPrediction
	err := db.WithContext(ctx).
		Where("week_start_date = ?", weekStart).
		Order("user_id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// WeekSummary is one row of the admin week picker: a week that has at least
// one prediction record and the number of users covered.
type WeekSummary struct {
	WeekStartDate time.Time `json:"week_start_date"`
	WeekNumber    int       `json:"week_number"`
	UserCount     int64     `json:"user_count"`
}

// ListWeeks returns a summary of every week with prediction records, most
// recent first.
func ListWeeks(ctx context.Context, db *gorm.DB) ([]WeekSummary, error) {
	var rows []WeekSummary
	err := db.WithContext(ctx).
		Model(&domain.WeeklyPrediction{}).
		Select("week_start_date, week_number, COUNT(DISTINCT user_id) AS user_count").
		Group("week_start_date, week_number").
		Order("week_start_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

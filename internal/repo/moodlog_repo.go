// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the read-only queries over the raw mood
// log: the history feeding prediction generation and the ground-truth lookup
// feeding actual-mood recording. The engine never writes to mood_logs.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
)

// ListLogsBefore returns every mood log of userID dated strictly before
// cutoff, ordered by log date then log time. One scan feeds all 28 cells of
// a prediction run; grouping by category and weekday happens in memory.
func ListLogsBefore(ctx context.Context, db *gorm.DB, userID string, cutoff time.Time) ([]domain.MoodLog, error) {
	var logs []domain.MoodLog
	err := db.WithContext(ctx).
		Where("user_id = ? AND log_date < ?", userID, cutoff).
		Order("log_date ASC, logged_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListLogsBetween returns every mood log of userID with a log date in
// [from, to] (inclusive), ordered by log date then log time. Used to collect
// the candidate ground-truth entries of one prediction week.
func ListLogsBetween(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) ([]domain.MoodLog, error) {
	var logs []domain.MoodLog
	err := db.WithContext(ctx).
		Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, from, to).
		Order("log_date ASC, logged_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// DistinctLogUsers returns the identifiers of every user with at least one
// mood log. This is the population a batch prediction run fans out over.
func DistinctLogUsers(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.MoodLog{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file records admin-triggered batch executions for the
// run-history view.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
)

// CreateBatchRun inserts a run record with a generated UUID.
func CreateBatchRun(ctx context.Context, db *gorm.DB, run *domain.BatchRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(run).Error
}

// ListBatchRuns returns up to limit most recent runs of the given kind, or
// of all kinds when kind is empty.
func ListBatchRuns(ctx context.Context, db *gorm.DB, kind string, limit int) ([]domain.BatchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	q := db.WithContext(ctx).Model(&domain.BatchRun{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var runs []domain.BatchRun
	if err := q.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

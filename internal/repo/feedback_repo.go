// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for recommendation
// feedback and the recommendation rows it references.
//
// Error semantics:
//   - Missing recommendations and missing feedback surface as ErrNotFound;
//     the service layer translates to its own sentinel errors.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
)

// GetRecommendation fetches a recommendation by ID. Returns ErrNotFound when
// no such recommendation exists.
func GetRecommendation(ctx context.Context, db *gorm.DB, id string) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// GetFeedback fetches the single feedback row of userID for
// recommendationID. Returns ErrNotFound when the user has not rated it yet.
func GetFeedback(ctx context.Context, db *gorm.DB, userID, recommendationID string) (*domain.RecommendationFeedback, error) {
	var fb domain.RecommendationFeedback
	err := db.WithContext(ctx).
		Where("recommendation_id = ? AND user_id = ?", recommendationID, userID).
		First(&fb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

// UpsertFeedback stores fb as the single feedback row for its
// (recommendation, user) pair: the first submission inserts, a resubmission
// overwrites rating, comment, and all derived scores in place. The row keeps
// its original ID and CreatedAt across resubmissions.
func UpsertFeedback(ctx context.Context, db *gorm.DB, fb *domain.RecommendationFeedback) error {
	now := time.Now().UTC()

	var existing domain.RecommendationFeedback
	err := db.WithContext(ctx).
		Where("recommendation_id = ? AND user_id = ?", fb.RecommendationID, fb.UserID).
		First(&existing).Error
	switch {
	case err == nil:
		fb.ID = existing.ID
		fb.CreatedAt = existing.CreatedAt
		fb.UpdatedAt = now
		return db.WithContext(ctx).Save(fb).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if fb.ID == "" {
			fb.ID = uuid.NewString()
		}
		fb.CreatedAt = now
		fb.UpdatedAt = now
		return db.WithContext(ctx).Create(fb).Error
	default:
		return err
	}
}

// Package services – FeedbackService
//
// This file implements FeedbackService, which turns a user's rating of a
// recommendation (1–5 stars plus an optional comment) into an effectiveness
// score. Comments long enough to carry signal are run through sentiment
// analysis and blended with the rating; shorter comments score on the rating
// alone. One row exists per (user, recommendation); resubmission overwrites
// it in place.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/repo"
	"github.com/forborealis/mindful-map-backend/internal/sentiment"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// minSentimentRunes is the minimum trimmed comment length that triggers
// sentiment analysis. Anything shorter scores on the rating alone.
const minSentimentRunes = 10

// FeedbackResult pairs a stored feedback row with the display-only sentiment
// label derived from its score.
type FeedbackResult struct {
	Feedback *domain.RecommendationFeedback `json:"feedback"`
	// SentimentLabel is "Positive", "Negative", or "Neutral". Rows without a
	// sentiment score report Neutral.
	SentimentLabel string `json:"sentiment_label"`
}

// FeedbackService implements the use-cases around recommendation feedback.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
	// Analyzer scores comment sentiment. A nil analyzer degrades every
	// submission to the rating-only path.
	Analyzer *sentiment.Analyzer

	// RatingWeight and SentimentWeight blend the two normalized signals when
	// a sentiment was computed. They need not sum to 1; the blend is a
	// weighted average.
	RatingWeight    float64
	SentimentWeight float64
	// EffectiveThreshold is the combined-score cutoff for the effective
	// classification.
	EffectiveThreshold float64
}

// Submit records feedback from userID on recommendationID.
//
// Semantics and validation:
//   - rating must be in [1,5]; otherwise ErrInvalidRating.
//   - recommendationID must exist; otherwise ErrRecommendationNotFound.
//   - The rating normalizes to (rating-1)/4. A comment whose trimmed length
//     is at least minSentimentRunes runes is scored for sentiment in [-1,1],
//     mapped to [0,1], and blended with the rating by the configured
//     weights. Without a usable comment the combined score is the
//     normalized rating alone.
//   - effective is combined >= EffectiveThreshold.
//
// Resubmission by the same user for the same recommendation overwrites the
// existing row rather than creating a duplicate.
func (s *FeedbackService) Submit(ctx context.Context, userID, recommendationID string, rating int, comment string) (*FeedbackResult, error) {
	tr := otel.Tracer("services/FeedbackService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("recommendation.id", recommendationID),
			attribute.Int("rating", rating),
		),
	)
	defer span.End()

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := repo.GetRecommendation(ctx, s.DB, recommendationID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}

	ratingNorm := float64(rating-1) / 4
	combined := ratingNorm

	var sentimentScore *float64
	trimmed := strings.TrimSpace(comment)
	if s.Analyzer != nil && utf8.RuneCountInString(trimmed) >= minSentimentRunes {
		score := s.Analyzer.Score(trimmed)
		sentimentScore = &score
		sentimentNorm := (score + 1) / 2
		combined = s.blend(ratingNorm, sentimentNorm)
	}

	fb := &domain.RecommendationFeedback{
		RecommendationID: recommendationID,
		UserID:           userID,
		Rating:           rating,
		Comment:          trimmed,
		SentimentScore:   sentimentScore,
		CombinedScore:    combined,
		Effective:        combined >= s.EffectiveThreshold,
	}
	if err := repo.UpsertFeedback(ctx, s.DB, fb); err != nil {
		return nil, err
	}
	feedbackScored.WithLabelValues(strconv.FormatBool(fb.Effective)).Inc()
	return s.result(fb), nil
}

// Get returns the feedback userID previously submitted for recommendationID,
// or ErrFeedbackNotFound when none exists. The recommendation itself is
// checked first so a bad ID surfaces as ErrRecommendationNotFound rather
// than an empty feedback lookup.
func (s *FeedbackService) Get(ctx context.Context, userID, recommendationID string) (*FeedbackResult, error) {
	tr := otel.Tracer("services/FeedbackService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("recommendation.id", recommendationID),
		),
	)
	defer span.End()

	if _, err := repo.GetRecommendation(ctx, s.DB, recommendationID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}

	fb, err := repo.GetFeedback(ctx, s.DB, userID, recommendationID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return s.result(fb), nil
}

// blend computes the weighted average of the two normalized signals.
// Degenerate weights (both zero) fall back to the rating.
func (s *FeedbackService) blend(ratingNorm, sentimentNorm float64) float64 {
	total := s.RatingWeight + s.SentimentWeight
	if total <= 0 {
		return ratingNorm
	}
	return (s.RatingWeight*ratingNorm + s.SentimentWeight*sentimentNorm) / total
}

// result attaches the display sentiment label to a stored row.
func (s *FeedbackService) result(fb *domain.RecommendationFeedback) *FeedbackResult {
	score := 0.0
	if fb.SentimentScore != nil {
		score = *fb.SentimentScore
	}
	label := "Neutral"
	if s.Analyzer != nil {
		label = s.Analyzer.Classify(score)
	}
	return &FeedbackResult{Feedback: fb, SentimentLabel: label}
}

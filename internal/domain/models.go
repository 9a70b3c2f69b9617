// Package domain defines the persistence models for the mood prediction
// engine: the raw mood log it reads, the weekly prediction records it writes,
// and recommendation feedback. These types are mapped with GORM and shared
// across the repository and service layers.
package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/forborealis/mindful-map-backend/internal/mood"
)

// MoodLog is one logged mood entry: user U felt mood M in category C on date
// D. The table is owned by the journaling CRUD backend; this engine only
// ever reads it (prediction history and ground-truth lookup).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the logging user; indexed for per-user scans.
//   - Category: one of the four tracked categories.
//   - Mood: the logged label from the fixed 10-label set.
//   - LogDate: the calendar day the mood belongs to (date-only).
//   - LoggedAt: the instant the entry was submitted; breaks same-day ties.
type MoodLog struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id"   gorm:"type:varchar(64);not null;index:idx_user_logs,priority:1"`
	Category  mood.Category  `json:"category"  gorm:"type:varchar(16);not null;check:category IN ('activity','social','health','sleep')"`
	Mood      mood.Label     `json:"mood"      gorm:"type:varchar(16);not null"`
	LogDate   time.Time      `json:"log_date"  gorm:"type:date;not null;index:idx_user_logs,priority:2"`
	LoggedAt  time.Time      `json:"logged_at" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`
}

// TableName returns the database table name for MoodLog.
func (MoodLog) TableName() string { return "mood_logs" }

// PredictionCell is the prediction/outcome unit for one (category, weekday)
// pair within one user's weekly record.
//
// AllMoodProbabilities always covers the full 10-label vocabulary once the
// cell has been generated; PredictedMood is derivable from it. ActualMood
// stays nil until the cell's calendar day has elapsed and a log exists.
type PredictionCell struct {
	PredictedMood        *mood.Label            `json:"predictedMood"`
	ActualMood           *mood.Label            `json:"actualMood"`
	AllMoodProbabilities map[mood.Label]float64 `json:"allMoodProbabilities"`
}

// PredictionMatrix is the category × weekday grid of cells. It serializes to
// a JSON column; the fixed key sets guarantee all 28 cells exist once the
// matrix has been generated.
type PredictionMatrix map[mood.Category]map[mood.Weekday]*PredictionCell

// NewPredictionMatrix returns a matrix with all 28 cells allocated and
// empty.
func NewPredictionMatrix() PredictionMatrix {
	m := make(PredictionMatrix, len(mood.Categories()))
	for _, c := range mood.Categories() {
		row := make(map[mood.Weekday]*PredictionCell, len(mood.Weekdays()))
		for _, d := range mood.Weekdays() {
			row[d] = &PredictionCell{}
		}
		m[c] = row
	}
	return m
}

// Cell returns the cell at (category, weekday), allocating the path if the
// stored matrix predates a full grid. Never returns nil.
func (m PredictionMatrix) Cell(c mood.Category, d mood.Weekday) *PredictionCell {
	row, ok := m[c]
	if !ok {
		row = make(map[mood.Weekday]*PredictionCell, len(mood.Weekdays()))
		m[c] = row
	}
	cell, ok := row[d]
	if !ok {
		cell = &PredictionCell{}
		row[d] = cell
	}
	return cell
}

// Merge copies predicted fields from src into m for every cell that has no
// recorded ActualMood yet. Cells whose outcome is already observed keep both
// their probabilities and their prediction, so regenerating a week can never
// erase ground truth or rewrite the prediction it was judged against.
func (m PredictionMatrix) Merge(src PredictionMatrix) {
	for _, c := range mood.Categories() {
		for _, d := range mood.Weekdays() {
			dst := m.Cell(c, d)
			if dst.ActualMood != nil {
				continue
			}
			in := src.Cell(c, d)
			dst.PredictedMood = in.PredictedMood
			dst.AllMoodProbabilities = in.AllMoodProbabilities
		}
	}
}

// Completed reports whether every cell whose calendar day within the week
// starting at weekStart lies strictly before today has an ActualMood. Future
// cells (and today's, which may still receive logs) do not count against
// completion.
func (m PredictionMatrix) Completed(weekStart, today time.Time) bool {
	for _, d := range mood.Weekdays() {
		day := weekStart.AddDate(0, 0, d.Offset())
		if !day.Before(today) {
			continue
		}
		for _, c := range mood.Categories() {
			if m.Cell(c, d).ActualMood == nil {
				return false
			}
		}
	}
	return true
}

// WeeklyPrediction is one user's prediction record for one ISO week. The
// (user_id, year, week_number) triple is unique: concurrent recomputation
// for the same user and week converges onto a single row.
//
// Fields:
//   - UserID: owning user, immutable after creation.
//   - WeekStartDate / WeekEndDate: Monday and Sunday bounds, inclusive.
//   - Year / WeekNumber: the ISO year/week pair keying the record.
//   - Predictions: the category × weekday cell matrix (JSON column).
//   - IsCompleted: derived flag, true once every past cell has an outcome.
type WeeklyPrediction struct {
	ID            string           `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID        string           `json:"user_id"         gorm:"type:varchar(64);not null;uniqueIndex:ux_prediction_user_week,priority:1"`
	Year          int              `json:"year"            gorm:"not null;uniqueIndex:ux_prediction_user_week,priority:2"`
	WeekNumber    int              `json:"week_number"     gorm:"not null;uniqueIndex:ux_prediction_user_week,priority:3"`
	WeekStartDate time.Time        `json:"week_start_date" gorm:"type:date;not null;index"`
	WeekEndDate   time.Time        `json:"week_end_date"   gorm:"type:date;not null"`
	Predictions   PredictionMatrix `json:"predictions"     gorm:"type:text;serializer:json"`
	IsCompleted   bool             `json:"is_completed"    gorm:"not null;default:false"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `json:"-"               gorm:"index"`
}

// TableName returns the database table name for WeeklyPrediction.
func (WeeklyPrediction) TableName() string { return "weekly_predictions" }

// Recommendation is a delivered wellbeing recommendation. Generation lives
// in a separate service; this engine only references rows to validate and
// attach feedback.
type Recommendation struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	Category  mood.Category  `json:"category"   gorm:"type:varchar(16);not null"`
	Content   string         `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Recommendation.
func (Recommendation) TableName() string { return "recommendations" }

// RecommendationFeedback is one user's rating of one recommendation,
// combined with an optional sentiment analysis of their comment. A user has
// at most one row per recommendation (unique index); resubmission updates it
// in place.
//
// SentimentScore is nil when no analysis ran (absent or too-short comment,
// or analysis failure). CombinedScore is always present once feedback is
// stored.
type RecommendationFeedback struct {
	ID               string         `json:"id"                gorm:"type:char(36);primaryKey"`
	RecommendationID string         `json:"recommendation_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_feedback_rec_user,priority:1"`
	UserID           string         `json:"user_id"           gorm:"type:varchar(64);not null;index;uniqueIndex:ux_feedback_rec_user,priority:2"`
	Rating           int            `json:"rating"            gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment          string         `json:"comment"           gorm:"type:text"`
	SentimentScore   *float64       `json:"sentiment_score,omitempty"`
	CombinedScore    float64        `json:"combined_score"    gorm:"not null"`
	Effective        bool           `json:"effective"         gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-"                 gorm:"index"`

	// Recommendation is the rated entity. Feedback is cascade-deleted if
	// the recommendation is removed.
	Recommendation Recommendation `json:"-" gorm:"foreignKey:RecommendationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RecommendationFeedback.
func (RecommendationFeedback) TableName() string { return "recommendation_feedback" }

// BatchRun kinds.
const (
	BatchKindPredictions = "predictions"
	BatchKindActuals     = "actuals"
)

// BatchRun records one admin-triggered batch execution (prediction
// generation or actual-mood recording) for the run-history view: which week
// it targeted, how many users succeeded or failed, and the failure details.
type BatchRun struct {
	ID            string         `json:"id"              gorm:"type:char(36);primaryKey"`
	Kind          string         `json:"kind"            gorm:"type:varchar(16);not null;index;check:kind IN ('predictions','actuals')"`
	WeekStartDate time.Time      `json:"week_start_date" gorm:"type:date;not null;index"`
	Total         int            `json:"total"           gorm:"not null"`
	Succeeded     int            `json:"succeeded"       gorm:"not null"`
	Failed        int            `json:"failed"          gorm:"not null"`
	FailureDetail string         `json:"failure_detail,omitempty" gorm:"type:text"`
	Duration      time.Duration  `json:"duration"        gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for BatchRun.
func (BatchRun) TableName() string { return "batch_runs" }

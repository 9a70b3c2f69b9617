// Prediction HTTP handlers.
//
// This file exposes the admin REST endpoints of the prediction engine:
//   - GET  /admin/predictions/weeks       (weeks with prediction records)
//   - POST /admin/predictions/calculate   (batch prediction generation)
//   - POST /admin/predictions/actuals     (batch actual-mood recording)
//   - GET  /admin/predictions/comparison  (per-day per-category tier counts)
//   - GET  /admin/predictions/runs        (batch run history)
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and translate service errors into HTTP results.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/forborealis/mindful-map-backend/internal/domain"
	"github.com/forborealis/mindful-map-backend/internal/repo"
	"github.com/forborealis/mindful-map-backend/internal/services"
	"github.com/forborealis/mindful-map-backend/internal/utils"
	"github.com/forborealis/mindful-map-backend/internal/week"
)

//
// Service contracts (context-aware)
//

// PredictionService defines the prediction-generation operations consumed by
// HTTP handlers. Implementations must be safe for concurrent use and honor
// the provided context.
type PredictionService interface {
	// GenerateForUser upserts one user's prediction record for a week.
	GenerateForUser(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPrediction, error)
	// GenerateAll runs prediction generation for every user with history.
	GenerateAll(ctx context.Context, weekStart time.Time) (*services.BatchSummary, error)
	// Runs returns the recorded batch runs of one kind, most recent first.
	Runs(ctx context.Context, kind string, limit int) ([]domain.BatchRun, error)
}

// ActualService defines the actual-mood recording operation.
type ActualService interface {
	// RecordWeek fills the elapsed cells of every record in a week.
	RecordWeek(ctx context.Context, weekStart time.Time) (*services.BatchSummary, error)
}

// ComparisonService defines the admin read model over prediction outcomes.
type ComparisonService interface {
	// Weeks lists every week with prediction records.
	Weeks(ctx context.Context) ([]repo.WeekSummary, error)
	// Compare aggregates match tiers for one week across all users.
	Compare(ctx context.Context, weekStart time.Time) (*services.ComparisonReport, error)
}

// FeedbackService defines the recommendation feedback operations.
type FeedbackService interface {
	// Submit upserts one user's feedback on a recommendation.
	Submit(ctx context.Context, userID, recommendationID string, rating int, comment string) (*services.FeedbackResult, error)
	// Get returns the user's previously submitted feedback, if any.
	Get(ctx context.Context, userID, recommendationID string) (*services.FeedbackResult, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the engine. It depends on abstract
// service interfaces to keep transport concerns separate from business
// logic.
type Handlers struct {
	predSvc   PredictionService
	actualSvc ActualService
	cmpSvc    ComparisonService
	fbSvc     FeedbackService
}

// New constructs a Handlers instance bound to the given services.
func New(predSvc PredictionService, actualSvc ActualService, cmpSvc ComparisonService, fbSvc FeedbackService) *Handlers {
	return &Handlers{predSvc: predSvc, actualSvc: actualSvc, cmpSvc: cmpSvc, fbSvc: fbSvc}
}

// userID extracts the authenticated user id from Gin context (set by
// upstream middleware). If absent, it falls back to the "X-User-ID" header
// (tests use it), and finally to "demo-user".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// CalculatePredictionsRequest is the JSON payload for a batch prediction
// run. WeekStartDate defaults to the Monday of the current week; UserID
// narrows the run to a single user.
type CalculatePredictionsRequest struct {
	// WeekStartDate is the Monday of the target week (YYYY-MM-DD).
	WeekStartDate string `json:"weekStartDate" example:"2025-06-02"`
	// UserID optionally restricts generation to one user.
	UserID string `json:"userId,omitempty" example:"user123"`
}

// RecordActualsRequest is the JSON payload for a batch actual-mood run.
type RecordActualsRequest struct {
	// WeekStartDate is the Monday of the target week (YYYY-MM-DD).
	WeekStartDate string `json:"weekStartDate" binding:"required" example:"2025-06-02"`
}

// ListWeeksResponse wraps the weeks available to the admin picker.
type ListWeeksResponse struct {
	Weeks []repo.WeekSummary `json:"weeks"`
}

// ListRunsResponse wraps the recorded batch runs.
type ListRunsResponse struct {
	Runs []domain.BatchRun `json:"runs"`
}

//
// Helpers
//

// parseWeekStart validates a YYYY-MM-DD Monday date from client input.
func parseWeekStart(s string) (time.Time, bool) {
	t, err := week.ParseStart(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

//
// Handlers
//

// ListWeeks godoc
// @ID          listPredictionWeeks
// @Summary     List weeks with prediction records
// @Description Returns every week that has at least one WeeklyPrediction record, most recent first, with the number of users covered.
// @Tags        Predictions
// @Produce     json
//
// @Success     200  {object} handlers.ListWeeksResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/predictions/weeks [get]
func (h *Handlers) ListWeeks(c *gin.Context) {
	weeks, err := h.cmpSvc.Weeks(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if weeks == nil {
		weeks = []repo.WeekSummary{}
	}
	ok(c, http.StatusOK, ListWeeksResponse{Weeks: weeks})
}

// CalculatePredictions godoc
// @ID          calculatePredictions
// @Summary     Run batch prediction generation
// @Description Generates (or regenerates) the weekly prediction matrix for every user with mood history. Per-user failures are reported in the summary without aborting the run.
// @Tags        Predictions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CalculatePredictionsRequest  false  "Target week (defaults to the current week's Monday)"
//
// @Success     200  {object} services.BatchSummary
// @Failure     400  {object} handlers.ErrorResponse "Invalid week start date"
// @Failure     500  {object} handlers.ErrorResponse "Generation failed"
// @Router      /admin/predictions/calculate [post]
func (h *Handlers) CalculatePredictions(c *gin.Context) {
	var req CalculatePredictionsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}
	}

	weekStart := week.StartOf(time.Now().UTC())
	if req.WeekStartDate != "" {
		var valid bool
		if weekStart, valid = parseWeekStart(req.WeekStartDate); !valid {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "weekStartDate must be a Monday in YYYY-MM-DD form")
			return
		}
	}

	ctx := c.Request.Context()
	if req.UserID != "" {
		rec, err := h.predSvc.GenerateForUser(ctx, req.UserID, weekStart)
		if err != nil {
			if errors.Is(err, services.ErrInvalidWeekStart) {
				fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
				return
			}
			fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, rec)
		return
	}

	summary, err := h.predSvc.GenerateAll(ctx, weekStart)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWeekStart) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, summary)
}

// RecordActuals godoc
// @ID          recordActualMoods
// @Summary     Run batch actual-mood recording
// @Description Fills the elapsed cells of every user's prediction record for the given week with the moods actually logged. Future cells are left untouched.
// @Tags        Predictions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RecordActualsRequest  true  "Target week"
//
// @Success     200  {object} services.BatchSummary
// @Failure     400  {object} handlers.ErrorResponse "Invalid week start date"
// @Failure     500  {object} handlers.ErrorResponse "Recording failed"
// @Router      /admin/predictions/actuals [post]
func (h *Handlers) RecordActuals(c *gin.Context) {
	var req RecordActualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "weekStartDate required (YYYY-MM-DD)")
		return
	}
	weekStart, valid := parseWeekStart(req.WeekStartDate)
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "weekStartDate must be a Monday in YYYY-MM-DD form")
		return
	}

	summary, err := h.actualSvc.RecordWeek(c.Request.Context(), weekStart)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWeekStart) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeRecordFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, summary)
}

// Comparison godoc
// @ID          dailyMoodComparison
// @Summary     Daily mood comparison for one week
// @Description Aggregates predicted-vs-actual match tiers per weekday and category across every user's record for the week. Slots with no observed outcomes report zero totals.
// @Tags        Predictions
// @Produce     json
//
// @Param       weekStartDate  query  string  true  "Monday of the target week (YYYY-MM-DD)"  example(2025-06-02)
//
// @Success     200  {object} services.ComparisonReport
// @Failure     400  {object} handlers.ErrorResponse "Invalid week start date"
// @Failure     500  {object} handlers.ErrorResponse "Aggregation failed"
// @Router      /admin/predictions/comparison [get]
func (h *Handlers) Comparison(c *gin.Context) {
	weekStart, valid := parseWeekStart(c.Query("weekStartDate"))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "weekStartDate must be a Monday in YYYY-MM-DD form")
		return
	}

	report, err := h.cmpSvc.Compare(c.Request.Context(), weekStart)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWeekStart) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCompareFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, report)
}

// ListRuns godoc
// @ID          listBatchRuns
// @Summary     List batch run history
// @Description Returns the recorded prediction or actual-mood batch runs, most recent first.
// @Tags        Predictions
// @Produce     json
//
// @Param       kind   query  string  false  "Run kind"  Enums(predictions, actuals)  default(predictions)
// @Param       limit  query  int     false  "Maximum rows"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListRunsResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid kind"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/predictions/runs [get]
func (h *Handlers) ListRuns(c *gin.Context) {
	kind := c.DefaultQuery("kind", domain.BatchKindPredictions)
	if kind != domain.BatchKindPredictions && kind != domain.BatchKindActuals {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be predictions or actuals")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 20)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := h.predSvc.Runs(c.Request.Context(), kind, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if runs == nil {
		runs = []domain.BatchRun{}
	}
	ok(c, http.StatusOK, ListRunsResponse{Runs: runs})
}

// Recommendation feedback HTTP handlers.
//
// This file exposes the REST endpoints for rating recommendations:
//   - POST /recommendations/{id}/feedback  (submit or resubmit feedback)
//   - GET  /recommendations/{id}/feedback  (fetch the user's feedback)
//
// Handlers are transport-thin: they validate input, delegate to the feedback
// service, and translate service errors into HTTP results. Resubmission by
// the same user updates the stored row rather than creating a duplicate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forborealis/mindful-map-backend/internal/services"
)

// SubmitFeedbackRequest is the JSON payload for rating a recommendation.
//
// Rating is required and constrained to [1,5] at the transport layer.
// Comment is optional; comments of at least 10 trimmed characters are also
// scored for sentiment.
type SubmitFeedbackRequest struct {
	// Rating is the star rating, 1 (ineffective) to 5 (very effective).
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"`
	// Comment optionally explains the rating.
	Comment string `json:"comment,omitempty" example:"This really helped me relax before the exam"`
}

// SubmitFeedback godoc
// @ID          submitRecommendationFeedback
// @Summary     Submit feedback on a recommendation
// @Description Records a 1-5 rating and optional comment, computes the effectiveness score, and returns the stored feedback with its sentiment label. Resubmission overwrites the previous feedback.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"   example(user123)
// @Param       id         path    string  true  "Recommendation ID (UUID)" format(uuid) example(fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b)
// @Param       body       body    handlers.SubmitFeedbackRequest true "Feedback payload"
//
// @Success     200  {object} services.FeedbackResult
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404  {object} handlers.ErrorResponse "Recommendation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /recommendations/{id}/feedback [post]
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	recommendationID := c.Param("id")
	if _, err := uuid.Parse(recommendationID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recommendation id must be a UUID")
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be an integer between 1 and 5")
		return
	}

	res, err := h.fbSvc.Submit(c.Request.Context(), userID(c), recommendationID, req.Rating, req.Comment)
	if err != nil {
		switch err {
		case services.ErrInvalidRating:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be between 1 and 5")
		case services.ErrRecommendationNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recommendation not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeFeedbackFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, res)
}

// GetFeedback godoc
// @ID          getRecommendationFeedback
// @Summary     Fetch the user's feedback on a recommendation
// @Description Returns the feedback the current user previously submitted for the recommendation, if any.
// @Tags        Feedback
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"   example(user123)
// @Param       id         path    string  true  "Recommendation ID (UUID)" format(uuid) example(fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b)
//
// @Success     200  {object} services.FeedbackResult
// @Failure     400  {object} handlers.ErrorResponse "Invalid recommendation ID"
// @Failure     404  {object} handlers.ErrorResponse "No feedback submitted"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /recommendations/{id}/feedback [get]
func (h *Handlers) GetFeedback(c *gin.Context) {
	recommendationID := c.Param("id")
	if _, err := uuid.Parse(recommendationID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recommendation id must be a UUID")
		return
	}

	res, err := h.fbSvc.Get(c.Request.Context(), userID(c), recommendationID)
	if err != nil {
		switch err {
		case services.ErrRecommendationNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recommendation not found")
		case services.ErrFeedbackNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no feedback submitted")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeFeedbackFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, res)
}

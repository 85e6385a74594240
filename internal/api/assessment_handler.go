package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// AssessmentHandler serves the review phase. Both endpoints sit behind
// the token middleware; the client id comes from the token, never the
// request body.
type AssessmentHandler struct {
	reviewService service.ReviewService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(reviewService service.ReviewService) *AssessmentHandler {
	return &AssessmentHandler{reviewService: reviewService}
}

// ReviewUpdateRequest carries a partial review mutation. Absent fields
// keep their stored values.
type ReviewUpdateRequest struct {
	Status      *string               `json:"status"`
	Findings    *string               `json:"findings"`
	Attachments []domain.UploadRecord `json:"attachments"`
	Complete    bool                  `json:"complete"`
}

// Get returns the review state for the authenticated client.
func (h *AssessmentHandler) Get(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get client ID from token")
		return
	}

	state, err := h.reviewService.Get(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, state, "")
}

// Update applies a review mutation for the authenticated client.
func (h *AssessmentHandler) Update(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get client ID from token")
		return
	}

	var req ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "INVALID_REQUEST", "Invalid request body")
		return
	}

	update := service.ReviewUpdate{
		Findings:    req.Findings,
		Attachments: req.Attachments,
		Complete:    req.Complete,
	}
	if req.Status != nil {
		status := domain.AssessmentStatus(*req.Status)
		update.Status = &status
	}

	if err := h.reviewService.Update(c.Request.Context(), clientID, update); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Assessment updated successfully")
}

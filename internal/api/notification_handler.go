package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler serves the email-notifications endpoint.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type SendNotificationRequest struct {
	Type         string `json:"type" binding:"required"`
	AssessmentID string `json:"assessment_id"`
}

// Send composes and records a workflow notification.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "INVALID_REQUEST", "Notification type is required")
		return
	}

	var assessmentID *primitive.ObjectID
	if req.AssessmentID != "" {
		id, err := primitive.ObjectIDFromHex(req.AssessmentID)
		if err == nil {
			assessmentID = &id
		}
	}

	if err := h.notificationService.Send(c.Request.Context(), domain.NotificationType(req.Type), assessmentID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Notification processed successfully")
}

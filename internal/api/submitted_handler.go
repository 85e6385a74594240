package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmittedHandler serves the submitted-assessments view and its
// management actions (delete, create_new).
type SubmittedHandler struct {
	questionnaireService service.QuestionnaireService
	defaultClientID      string
}

// NewSubmittedHandler creates a new SubmittedHandler.
func NewSubmittedHandler(questionnaireService service.QuestionnaireService, defaultClientID string) *SubmittedHandler {
	return &SubmittedHandler{
		questionnaireService: questionnaireService,
		defaultClientID:      defaultClientID,
	}
}

type SubmittedActionRequest struct {
	Action       string `json:"action"`
	AssessmentID string `json:"assessment_id"`
	ClientID     string `json:"client_id"`
}

func (h *SubmittedHandler) clientIDOrDefault(clientID string) string {
	if clientID == "" {
		return h.defaultClientID
	}
	return clientID
}

// List returns every submitted assessment for the client, newest first,
// with attachments grouped by section.
func (h *SubmittedHandler) List(c *gin.Context) {
	clientID := h.clientIDOrDefault(c.Query("client_id"))

	views, err := h.questionnaireService.ListSubmitted(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, views, "")
}

// Action dispatches the POST management actions. A body without an
// action behaves as a read, same as GET.
func (h *SubmittedHandler) Action(c *gin.Context) {
	var req SubmittedActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "INVALID_REQUEST", "Invalid request body")
		return
	}

	switch req.Action {
	case "delete":
		if err := h.questionnaireService.Delete(c.Request.Context(), req.AssessmentID); err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, nil, service.MsgAssessmentDeleted)
	case "create_new":
		doc, err := h.questionnaireService.CreateNew(c.Request.Context(), h.clientIDOrDefault(req.ClientID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, gin.H{"id": doc.ID.Hex()}, service.MsgNewAssessmentCreated)
	case "":
		views, err := h.questionnaireService.ListSubmitted(c.Request.Context(), h.clientIDOrDefault(req.ClientID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, views, "")
	default:
		respondError(c, http.StatusInternalServerError, "INVALID_ACTION", "Unknown action")
	}
}

// Delete removes an assessment identified by the assessment_id query
// parameter; kept alongside the POST action for older clients.
func (h *SubmittedHandler) Delete(c *gin.Context) {
	if err := h.questionnaireService.Delete(c.Request.Context(), c.Query("assessment_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, service.MsgAssessmentDeleted)
}

package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// QuestionnaireHandler serves the wizard's read and save endpoints.
type QuestionnaireHandler struct {
	questionnaireService service.QuestionnaireService
	defaultClientID      string
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(questionnaireService service.QuestionnaireService, defaultClientID string) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
		defaultClientID:      defaultClientID,
	}
}

type SaveQuestionnaireRequest struct {
	ClientID string                    `json:"client_id"`
	Sections map[string]domain.Section `json:"sections"`
	Submit   bool                      `json:"submit"`
}

// clientIDOrDefault falls back to the configured default client when the
// caller supplies none; the portal is effectively single-tenant.
func (h *QuestionnaireHandler) clientIDOrDefault(clientID string) string {
	if clientID == "" {
		return h.defaultClientID
	}
	return clientID
}

// Get returns the active questionnaire data for the client.
func (h *QuestionnaireHandler) Get(c *gin.Context) {
	clientID := h.clientIDOrDefault(c.Query("client_id"))

	data, err := h.questionnaireService.Get(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, data, "")
}

// Save applies a partial save and/or the submit action. A body without
// sections and without submit is a pure read.
func (h *QuestionnaireHandler) Save(c *gin.Context) {
	var req SaveQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "INVALID_REQUEST", "Invalid request body")
		return
	}
	clientID := h.clientIDOrDefault(req.ClientID)

	doc, message, err := h.questionnaireService.Save(c.Request.Context(), clientID, req.Sections, req.Submit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, service.QuestionnaireData{
		Sections:   doc.Sections,
		Assessment: doc.Assessment,
	}, message)
}

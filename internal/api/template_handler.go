package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves the template parser and the template manager.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type ParseTemplateRequest struct {
	PDFContent string `json:"pdf_content" binding:"required"`
}

type UploadTemplateRequest struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Sections    []domain.SectionDefinition `json:"sections"`
	CreatedBy   string                     `json:"created_by"`
}

// Parse runs the template grammar over extracted document text and
// returns the structured questionnaire definition.
func (h *TemplateHandler) Parse(c *gin.Context) {
	var req ParseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "TEMPLATE_INVALID", "pdf_content is required")
		return
	}

	parsed, err := h.templateService.Parse(req.PDFContent)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, parsed, "Template parsed successfully")
}

// Manage dispatches template-manager reads by the action query param.
func (h *TemplateHandler) Manage(c *gin.Context) {
	switch c.DefaultQuery("action", "list") {
	case "list":
		templates, err := h.templateService.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, templates, "")
	case "get":
		tmpl, err := h.templateService.Get(c.Request.Context(), c.Query("template_id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, tmpl, "")
	default:
		respondError(c, http.StatusInternalServerError, "INVALID_ACTION", "Unknown action")
	}
}

// Upload stores a parsed template.
func (h *TemplateHandler) Upload(c *gin.Context) {
	var req UploadTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "TEMPLATE_INVALID", "Invalid request body")
		return
	}

	tmpl, err := h.templateService.Upload(c.Request.Context(), req.Title, req.Description, req.Sections, req.CreatedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tmpl, "Template uploaded successfully")
}

// Delete soft-deletes a template; it disappears from listings but the
// record survives.
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templateService.Delete(c.Request.Context(), c.Query("template_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Template deleted successfully")
}

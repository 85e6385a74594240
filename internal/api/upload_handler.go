package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler serves the file-upload endpoint.
type UploadHandler struct {
	uploadService   service.UploadService
	defaultClientID string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService, defaultClientID string) *UploadHandler {
	return &UploadHandler{
		uploadService:   uploadService,
		defaultClientID: defaultClientID,
	}
}

// FileUploadRequest carries one file as a data URL. The whole payload is
// buffered in memory; the portal's files are small questionnaire
// attachments, not bulk data.
type FileUploadRequest struct {
	ClientID string `json:"client_id"`
	Section  string `json:"section"`
	FileName string `json:"fileName"`
	FileData string `json:"fileData"`
}

// Upload registers one uploaded file.
func (h *UploadHandler) Upload(c *gin.Context) {
	var req FileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusInternalServerError, "MISSING_FILE_DATA", "File data and filename are required")
		return
	}
	if req.ClientID == "" {
		req.ClientID = h.defaultClientID
	}

	result, err := h.uploadService.Register(c.Request.Context(), req.ClientID, req.Section, req.FileName, req.FileData)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, result, "File uploaded successfully")
}

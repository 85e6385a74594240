package api

import (
	"net/http"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the pdf-export endpoint. The export artifact is a
// print-ready HTML document, not a PDF binary.
type ReportHandler struct {
	reportService   service.ReportService
	defaultClientID string
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, defaultClientID string) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		defaultClientID: defaultClientID,
	}
}

// ExportDocumentData is the optional inline document state: a browser
// that already holds the questionnaire can export it without a store
// round trip.
type ExportDocumentData struct {
	Sections    map[string]domain.Section `json:"sections"`
	Assessment  domain.AssessmentState    `json:"assessment"`
	SubmittedAt *time.Time                `json:"submittedAt"`
}

type ExportRequest struct {
	ClientID       string              `json:"client_id"`
	AssessmentData *ExportDocumentData `json:"assessmentData"`
}

// Export renders an assessment document as a downloadable HTML report.
// Inline assessmentData wins; otherwise the client's latest stored
// document is exported.
func (h *ReportHandler) Export(c *gin.Context) {
	var req ExportRequest
	// An empty body is fine; the default client is assumed.
	_ = c.ShouldBindJSON(&req)
	if req.ClientID == "" {
		req.ClientID = h.defaultClientID
	}

	var html string
	var err error
	if req.AssessmentData != nil {
		var submittedAt time.Time
		if req.AssessmentData.SubmittedAt != nil {
			submittedAt = *req.AssessmentData.SubmittedAt
		} else if req.AssessmentData.Assessment.SubmittedAt != nil {
			submittedAt = *req.AssessmentData.Assessment.SubmittedAt
		}
		html, err = h.reportService.RenderDocument(req.AssessmentData.Sections, req.AssessmentData.Assessment, submittedAt)
	} else {
		html, err = h.reportService.Render(c.Request.Context(), req.ClientID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assessment-report.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

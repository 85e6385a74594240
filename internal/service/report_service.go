package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/export"
	"alphacloud/assessment-portal/internal/repository"
	"alphacloud/assessment-portal/internal/storage"
)

// ReportService renders assessment documents as the portal's export
// artifact: a self-contained HTML report.
type ReportService interface {
	// Render exports the client's latest stored document.
	Render(ctx context.Context, clientID string) (string, error)
	// RenderDocument exports caller-supplied document state without
	// touching the store; attachments come from the sections' uploads.
	RenderDocument(sections map[string]domain.Section, review domain.AssessmentState, submittedAt time.Time) (string, error)
}

type reportService struct {
	assessmentRepo repository.AssessmentRepository
	fileRepo       repository.UploadedFileRepository
	fileStorage    storage.FileStorage
	clientName     string
}

// NewReportService creates a new instance of reportService.
func NewReportService(
	assessmentRepo repository.AssessmentRepository,
	fileRepo repository.UploadedFileRepository,
	fileStorage storage.FileStorage,
	clientName string,
) ReportService {
	return &reportService{
		assessmentRepo: assessmentRepo,
		fileRepo:       fileRepo,
		fileStorage:    fileStorage,
		clientName:     clientName,
	}
}

// Render joins the latest document with its upload index and runs the
// export projection.
func (s *reportService) Render(ctx context.Context, clientID string) (string, error) {
	doc, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAssessmentNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	attachments := map[string][]export.FileAttachment{}
	files, err := s.fileRepo.GetByAssessmentID(ctx, doc.ID)
	if err == nil {
		for _, file := range files {
			name := file.OriginalFileName
			if name == "" {
				name = file.FileName
			}
			attachments[file.Section] = append(attachments[file.Section], export.FileAttachment{
				FileName:    name,
				FileSize:    file.FileSize,
				DownloadURL: s.fileStorage.PublicURL(file.StoragePath),
			})
		}
	}

	var submittedAt time.Time
	if doc.Assessment.SubmittedAt != nil {
		submittedAt = *doc.Assessment.SubmittedAt
	}

	return export.Render(doc.Sections, doc.Assessment, submittedAt, attachments, s.clientName)
}

// RenderDocument exports the state handed in by the caller, as the
// browser does when it already holds the document.
func (s *reportService) RenderDocument(sections map[string]domain.Section, review domain.AssessmentState, submittedAt time.Time) (string, error) {
	attachments := map[string][]export.FileAttachment{}
	for key, section := range sections {
		for _, upload := range section.Uploads {
			attachments[key] = append(attachments[key], export.FileAttachment{
				FileName:    upload.FileName,
				FileSize:    upload.FileSize,
				DownloadURL: upload.PublicURL,
			})
		}
	}
	return export.Render(sections, review, submittedAt, attachments, s.clientName)
}

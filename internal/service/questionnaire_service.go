package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"
	"alphacloud/assessment-portal/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrStoreUnavailable   = errors.New("document store unavailable")
	ErrStoreWriteFailed   = errors.New("document store write failed")
)

// Messages returned to the wizard after a save.
const (
	MsgQuestionnaireSubmitted = "Questionnaire submitted successfully!"
	MsgAssessmentSaved        = "Assessment saved successfully"
	MsgNewAssessmentCreated   = "New assessment created successfully"
	MsgAssessmentDeleted      = "Assessment deleted successfully"
)

// QuestionnaireData is the read projection handed to the wizard.
type QuestionnaireData struct {
	Sections   map[string]domain.Section `json:"sections"`
	Assessment domain.AssessmentState    `json:"assessment"`
}

// AttachmentView is one uploaded file in the submitted-assessments view.
type AttachmentView struct {
	ID          string    `json:"id"`
	FileName    string    `json:"filename"`
	FileSize    int64     `json:"fileSize"`
	MimeType    string    `json:"mimeType"`
	StoragePath string    `json:"storagePath"`
	UploadedAt  time.Time `json:"uploadedAt"`
	DownloadURL string    `json:"downloadUrl"`
}

// SubmittedAssessmentView joins a submitted document with its upload index,
// grouped by section.
type SubmittedAssessmentView struct {
	ID          string                      `json:"id"`
	ClientID    string                      `json:"client_id"`
	SubmittedAt *time.Time                  `json:"submitted_at"`
	Sections    map[string]domain.Section   `json:"sections"`
	Assessment  domain.AssessmentState      `json:"assessment"`
	Attachments map[string][]AttachmentView `json:"attachments"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// QuestionnaireService owns the questionnaire side of the workflow: reads,
// incremental saves, submission, the submitted-assessments view, and
// document supersession.
type QuestionnaireService interface {
	Get(ctx context.Context, clientID string) (*QuestionnaireData, error)
	Save(ctx context.Context, clientID string, sections map[string]domain.Section, submit bool) (*domain.AssessmentDocument, string, error)
	ListSubmitted(ctx context.Context, clientID string) ([]SubmittedAssessmentView, error)
	CreateNew(ctx context.Context, clientID string) (*domain.AssessmentDocument, error)
	Delete(ctx context.Context, assessmentID string) error
}

type questionnaireService struct {
	assessmentRepo repository.AssessmentRepository
	fileRepo       repository.UploadedFileRepository
	fileStorage    storage.FileStorage
	now            func() time.Time
}

// NewQuestionnaireService creates a new instance of questionnaireService.
func NewQuestionnaireService(
	assessmentRepo repository.AssessmentRepository,
	fileRepo repository.UploadedFileRepository,
	fileStorage storage.FileStorage,
) QuestionnaireService {
	return &questionnaireService{
		assessmentRepo: assessmentRepo,
		fileRepo:       fileRepo,
		fileStorage:    fileStorage,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the active document's sections and review state, or an empty
// shell when the client has no document yet. Never writes.
func (s *questionnaireService) Get(ctx context.Context, clientID string) (*QuestionnaireData, error) {
	doc, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &QuestionnaireData{Sections: map[string]domain.Section{}}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	sections := doc.Sections
	if sections == nil {
		sections = map[string]domain.Section{}
	}
	return &QuestionnaireData{Sections: sections, Assessment: doc.Assessment}, nil
}

// Save applies a partial section update and/or the submit action through
// the merge engine and persists the result. A call with neither sections
// nor submit performs no write and returns the current document.
func (s *questionnaireService) Save(ctx context.Context, clientID string, sections map[string]domain.Section, submit bool) (*domain.AssessmentDocument, string, error) {
	existing, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Pure read: nothing to merge, nothing to write.
	if sections == nil && !submit {
		if existing == nil {
			existing = ApplyUpdate(nil, nil, false, s.now())
			existing.ClientID = clientID
		}
		return existing, "", nil
	}

	message := MsgAssessmentSaved
	if submit {
		message = MsgQuestionnaireSubmitted
	}

	if existing == nil {
		doc := ApplyUpdate(nil, sections, submit, s.now())
		doc.ClientID = clientID
		id, err := s.assessmentRepo.Create(ctx, doc)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
		}
		doc.ID = id
		return doc, message, nil
	}

	doc := ApplyUpdate(existing, sections, submit, s.now())
	if err := s.assessmentRepo.Update(ctx, doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	return doc, message, nil
}

// ListSubmitted returns every submitted document for the client, newest
// first, with its uploaded files grouped by section.
func (s *questionnaireService) ListSubmitted(ctx context.Context, clientID string) ([]SubmittedAssessmentView, error) {
	docs, err := s.assessmentRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	views := make([]SubmittedAssessmentView, 0, len(docs))
	for _, doc := range docs {
		if !doc.Assessment.Submitted {
			continue
		}

		attachments := map[string][]AttachmentView{}
		files, err := s.fileRepo.GetByAssessmentID(ctx, doc.ID)
		if err == nil {
			for _, file := range files {
				name := file.OriginalFileName
				if name == "" {
					name = file.FileName
				}
				attachments[file.Section] = append(attachments[file.Section], AttachmentView{
					ID:          file.ID.Hex(),
					FileName:    name,
					FileSize:    file.FileSize,
					MimeType:    file.MimeType,
					StoragePath: file.StoragePath,
					UploadedAt:  file.CreatedAt,
					DownloadURL: s.fileStorage.PublicURL(file.StoragePath),
				})
			}
		}

		sections := doc.Sections
		if sections == nil {
			sections = map[string]domain.Section{}
		}

		views = append(views, SubmittedAssessmentView{
			ID:          doc.ID.Hex(),
			ClientID:    doc.ClientID,
			SubmittedAt: doc.Assessment.SubmittedAt,
			Sections:    sections,
			Assessment:  doc.Assessment,
			Attachments: attachments,
			CreatedAt:   doc.Timestamps.Created,
			UpdatedAt:   doc.Timestamps.Updated,
		})
	}
	return views, nil
}

// CreateNew supersedes the client's current document: the prior one is
// archived (never deleted) and a fresh empty document takes its place.
func (s *questionnaireService) CreateNew(ctx context.Context, clientID string) (*domain.AssessmentDocument, error) {
	now := s.now()

	prior, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if prior != nil {
		archived := *prior
		archived.Assessment.Status = domain.StatusArchived
		ts := now
		archived.Timestamps.Archived = &ts
		archived.Timestamps.Updated = now
		if err := s.assessmentRepo.Update(ctx, &archived); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
		}
	}

	doc := ApplyUpdate(nil, nil, false, now)
	doc.ClientID = clientID
	id, err := s.assessmentRepo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	doc.ID = id
	return doc, nil
}

// Delete removes a document by id. This is the only hard-delete path.
func (s *questionnaireService) Delete(ctx context.Context, assessmentID string) error {
	if assessmentID == "" {
		return errors.New("assessment ID is required for delete operation")
	}
	id, err := primitive.ObjectIDFromHex(assessmentID)
	if err != nil {
		return ErrAssessmentNotFound
	}
	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	return nil
}

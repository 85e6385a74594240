package service

import (
	"context"
	"errors"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes over the repository and storage interfaces. Documents
// are cloned on the way in and out so tests can assert that the stored
// state was (or was not) modified.

type fakeAssessmentRepo struct {
	docs    []*domain.AssessmentDocument
	updates int
	failGet error
}

func cloneDoc(doc *domain.AssessmentDocument) *domain.AssessmentDocument {
	clone := *doc
	if doc.Sections != nil {
		sections := make(map[string]domain.Section, len(doc.Sections))
		for key, section := range doc.Sections {
			sections[key] = section
		}
		clone.Sections = sections
	}
	return &clone
}

func (r *fakeAssessmentRepo) Create(ctx context.Context, doc *domain.AssessmentDocument) (primitive.ObjectID, error) {
	stored := cloneDoc(doc)
	stored.ID = primitive.NewObjectID()
	r.docs = append(r.docs, stored)
	return stored.ID, nil
}

func (r *fakeAssessmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AssessmentDocument, error) {
	for _, doc := range r.docs {
		if doc.ID == id {
			return cloneDoc(doc), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAssessmentRepo) GetLatestByClientID(ctx context.Context, clientID string) (*domain.AssessmentDocument, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	var latest *domain.AssessmentDocument
	for _, doc := range r.docs {
		if doc.ClientID != clientID {
			continue
		}
		if latest == nil || !doc.Timestamps.Created.Before(latest.Timestamps.Created) {
			latest = doc
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return cloneDoc(latest), nil
}

func (r *fakeAssessmentRepo) ListByClientID(ctx context.Context, clientID string) ([]domain.AssessmentDocument, error) {
	var out []domain.AssessmentDocument
	for i := len(r.docs) - 1; i >= 0; i-- {
		if r.docs[i].ClientID == clientID {
			out = append(out, *cloneDoc(r.docs[i]))
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Update(ctx context.Context, doc *domain.AssessmentDocument) error {
	for i, stored := range r.docs {
		if stored.ID == doc.ID {
			r.docs[i] = cloneDoc(doc)
			r.updates++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeAssessmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, stored := range r.docs {
		if stored.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeFileRepo struct {
	files []domain.UploadedFile
}

func (r *fakeFileRepo) Create(ctx context.Context, file *domain.UploadedFile) (primitive.ObjectID, error) {
	stored := *file
	stored.ID = primitive.NewObjectID()
	r.files = append(r.files, stored)
	return stored.ID, nil
}

func (r *fakeFileRepo) GetByAssessmentID(ctx context.Context, assessmentID primitive.ObjectID) ([]domain.UploadedFile, error) {
	var out []domain.UploadedFile
	for _, file := range r.files {
		if file.AssessmentID != nil && *file.AssessmentID == assessmentID {
			out = append(out, file)
		}
	}
	return out, nil
}

type fakeTemplateRepo struct {
	templates []*domain.Template
}

func (r *fakeTemplateRepo) Create(ctx context.Context, tmpl *domain.Template) (primitive.ObjectID, error) {
	stored := *tmpl
	stored.ID = primitive.NewObjectID()
	stored.IsActive = true
	r.templates = append(r.templates, &stored)
	return stored.ID, nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error) {
	for _, tmpl := range r.templates {
		if tmpl.ID == id {
			clone := *tmpl
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTemplateRepo) ListActive(ctx context.Context) ([]domain.Template, error) {
	var out []domain.Template
	for i := len(r.templates) - 1; i >= 0; i-- {
		if r.templates[i].IsActive {
			out = append(out, *r.templates[i])
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	for _, tmpl := range r.templates {
		if tmpl.ID == id {
			tmpl.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeNotificationRepo struct {
	records []domain.EmailNotification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *domain.EmailNotification) (primitive.ObjectID, error) {
	stored := *notification
	stored.ID = primitive.NewObjectID()
	r.records = append(r.records, stored)
	return stored.ID, nil
}

type fakeStorage struct {
	uploads map[string][]byte
	failPut bool
}

func (s *fakeStorage) Upload(ctx context.Context, objectKey, contentType string, data []byte) (string, error) {
	if s.failPut {
		return "", errors.New("connection refused")
	}
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[objectKey] = data
	return s.PublicURL(objectKey), nil
}

func (s *fakeStorage) PublicURL(objectKey string) string {
	return "https://files.test/assessments/" + objectKey
}

func (s *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.uploads, objectKey)
	return nil
}

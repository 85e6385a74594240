package repository

import (
	"context"

	"alphacloud/assessment-portal/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors from other failures.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AssessmentRepository is the narrow interface over the assessment
// document table. client_id is not unique; "latest by timestamps.created"
// selects the active document for a client.
type AssessmentRepository interface {
	Create(ctx context.Context, doc *domain.AssessmentDocument) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AssessmentDocument, error)
	GetLatestByClientID(ctx context.Context, clientID string) (*domain.AssessmentDocument, error)
	ListByClientID(ctx context.Context, clientID string) ([]domain.AssessmentDocument, error)
	Update(ctx context.Context, doc *domain.AssessmentDocument) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UploadedFileRepository manages the denormalized upload index.
type UploadedFileRepository interface {
	Create(ctx context.Context, file *domain.UploadedFile) (primitive.ObjectID, error)
	GetByAssessmentID(ctx context.Context, assessmentID primitive.ObjectID) ([]domain.UploadedFile, error)
}

// TemplateRepository manages stored questionnaire templates. Delete is a
// soft delete (is_active flipped to false).
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.Template) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error)
	ListActive(ctx context.Context) ([]domain.Template, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

// NotificationRepository records processed email notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.EmailNotification) (primitive.ObjectID, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"
)

// ErrNotSubmittedYet gates the review phase: no review mutation is allowed
// until the questionnaire has been submitted.
var ErrNotSubmittedYet = errors.New("questionnaire must be submitted before accessing assessment")

// ReviewState is the read projection of the review phase.
type ReviewState struct {
	Status      domain.AssessmentStatus `json:"status"`
	Findings    string                  `json:"findings"`
	Attachments []domain.UploadRecord   `json:"attachments"`
	CanAccess   bool                    `json:"canAccess"`
	Submitted   bool                    `json:"submitted"`
}

// ReviewUpdate carries a partial review mutation. Nil pointers mean "keep
// the stored value"; Complete forces status to completed regardless of the
// Status field supplied alongside it.
type ReviewUpdate struct {
	Status      *domain.AssessmentStatus
	Findings    *string
	Attachments []domain.UploadRecord
	Complete    bool
}

// ReviewService owns the assessment-review phase of the workflow.
type ReviewService interface {
	Get(ctx context.Context, clientID string) (*ReviewState, error)
	Update(ctx context.Context, clientID string, update ReviewUpdate) error
}

type reviewService struct {
	assessmentRepo repository.AssessmentRepository
	now            func() time.Time
}

// NewReviewService creates a new instance of reviewService.
func NewReviewService(assessmentRepo repository.AssessmentRepository) ReviewService {
	return &reviewService{
		assessmentRepo: assessmentRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the review state for the client's active document. A client
// with no document sees a pending, inaccessible review.
func (s *reviewService) Get(ctx context.Context, clientID string) (*ReviewState, error) {
	doc, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ReviewState{
				Status:      domain.StatusPending,
				Attachments: []domain.UploadRecord{},
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	status := doc.Assessment.Status
	if status == "" {
		status = domain.StatusPending
	}
	attachments := doc.Assessment.Attachments
	if attachments == nil {
		attachments = []domain.UploadRecord{}
	}

	return &ReviewState{
		Status:      status,
		Findings:    doc.Assessment.Findings,
		Attachments: attachments,
		CanAccess:   doc.Assessment.Submitted,
		Submitted:   doc.Assessment.Submitted,
	}, nil
}

// Update applies a review mutation. The submission gate is checked against
// the stored document re-read here, not against any client-supplied state;
// a stale client cannot bypass it (a race between this check and the write
// remains possible and is accepted).
func (s *reviewService) Update(ctx context.Context, clientID string, update ReviewUpdate) error {
	doc, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !doc.Assessment.Submitted {
		return ErrNotSubmittedYet
	}

	now := s.now()

	if update.Status != nil && *update.Status != "" {
		doc.Assessment.Status = *update.Status
	} else if doc.Assessment.Status == "" {
		doc.Assessment.Status = domain.StatusInProgress
	}
	if update.Findings != nil {
		doc.Assessment.Findings = *update.Findings
	}
	if update.Attachments != nil {
		doc.Assessment.Attachments = update.Attachments
	}
	doc.Assessment.UpdatedAt = &now

	if update.Complete {
		doc.Assessment.Status = domain.StatusCompleted
		doc.Assessment.CompletedAt = &now
	}

	doc.Timestamps.Updated = now

	if err := s.assessmentRepo.Update(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alphacloud/assessment-portal/internal/config"
	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnknownNotificationType is returned for a type outside the workflow's
// three events.
var ErrUnknownNotificationType = errors.New("unknown notification type")

// NotificationService composes workflow emails. Delivery is log-only; each
// processed notification is recorded so the history can be inspected.
type NotificationService interface {
	Send(ctx context.Context, notifType domain.NotificationType, assessmentID *primitive.ObjectID) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	cfg              config.NotificationConfig
	now              func() time.Time
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, cfg config.NotificationConfig) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		cfg:              cfg,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Send composes the email for a workflow event, logs it instead of
// delivering it, and records the notification.
func (s *notificationService) Send(ctx context.Context, notifType domain.NotificationType, assessmentID *primitive.ObjectID) error {
	now := s.now()
	date := now.Format("January 2, 2006")

	var recipient, subject, body string
	switch notifType {
	case domain.NotificationQuestionnaireSubmitted:
		recipient = s.cfg.AssessorEmail
		subject = fmt.Sprintf("Assessment Questionnaire Submitted - %s", s.cfg.ClientName)
		body = fmt.Sprintf(
			"A new assessment questionnaire has been submitted by %s.\n\n"+
				"Assessment Details:\n- Client: %s\n- Submission Date: %s\n- Status: Ready for Assessment Review\n\n"+
				"Please log in to the Assessment Portal to review and provide your assessment.",
			s.cfg.ClientName, s.cfg.ClientName, date)
	case domain.NotificationAssessmentUploaded:
		recipient = s.cfg.ClientEmail
		subject = "Assessment Completed"
		body = fmt.Sprintf(
			"Your assessment has been completed.\n\n"+
				"Assessment Details:\n- Client: %s\n- Completion Date: %s\n- Status: Assessment Available\n\n"+
				"Please log in to the Assessment Portal to review your assessment findings and recommendations.",
			s.cfg.ClientName, date)
	case domain.NotificationAssessmentCompleted:
		recipient = s.cfg.AssessorEmail + "," + s.cfg.ClientEmail
		subject = "Assessment Fully Completed"
		body = fmt.Sprintf(
			"The assessment process has been fully completed.\n\n"+
				"Assessment Details:\n- Client: %s\n- Completion Date: %s\n- Final Status: Completed\n\n"+
				"Both parties have been notified. All documentation and recommendations are now available in the portal.",
			s.cfg.ClientName, date)
	default:
		return ErrUnknownNotificationType
	}

	// No real delivery: the composed email is logged only.
	log.Printf("INFO: Email notification would be sent: to=%s subject=%q\n%s", recipient, subject, body)

	record := &domain.EmailNotification{
		AssessmentID: assessmentID,
		Type:         notifType,
		Recipient:    recipient,
		Subject:      subject,
		Status:       "sent",
		SentAt:       now,
	}
	if _, err := s.notificationRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	return nil
}

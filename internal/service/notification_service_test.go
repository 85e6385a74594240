package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"alphacloud/assessment-portal/internal/config"
	"alphacloud/assessment-portal/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNotificationFixture() (*notificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, config.NotificationConfig{
		AssessorEmail: "assessor@alphacloud.example",
		ClientEmail:   "it@client.example",
		ClientName:    "Acme Corp",
	}).(*notificationService)
	svc.now = func() time.Time { return time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestSendNotificationRouting(t *testing.T) {
	tests := []struct {
		notifType     domain.NotificationType
		wantRecipient string
	}{
		{notifType: domain.NotificationQuestionnaireSubmitted, wantRecipient: "assessor@alphacloud.example"},
		{notifType: domain.NotificationAssessmentUploaded, wantRecipient: "it@client.example"},
		{notifType: domain.NotificationAssessmentCompleted, wantRecipient: "assessor@alphacloud.example,it@client.example"},
	}

	for _, tt := range tests {
		t.Run(string(tt.notifType), func(t *testing.T) {
			svc, repo := newNotificationFixture()
			id := primitive.NewObjectID()

			if err := svc.Send(context.Background(), tt.notifType, &id); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if len(repo.records) != 1 {
				t.Fatalf("records = %d, want 1", len(repo.records))
			}
			record := repo.records[0]
			if record.Recipient != tt.wantRecipient {
				t.Errorf("recipient = %q, want %q", record.Recipient, tt.wantRecipient)
			}
			if record.Status != "sent" {
				t.Errorf("status = %q, want sent", record.Status)
			}
			if record.AssessmentID == nil || *record.AssessmentID != id {
				t.Error("assessment id not recorded")
			}
			if record.Subject == "" {
				t.Error("empty subject")
			}
		})
	}
}

func TestSendNotificationSubjectCarriesClientName(t *testing.T) {
	svc, repo := newNotificationFixture()

	if err := svc.Send(context.Background(), domain.NotificationQuestionnaireSubmitted, nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if subject := repo.records[0].Subject; !strings.Contains(subject, "Acme Corp") {
		t.Errorf("subject = %q, want client name included", subject)
	}
}

func TestSendUnknownNotificationType(t *testing.T) {
	svc, repo := newNotificationFixture()

	err := svc.Send(context.Background(), domain.NotificationType("bogus"), nil)
	if !errors.Is(err, ErrUnknownNotificationType) {
		t.Errorf("error = %v, want ErrUnknownNotificationType", err)
	}
	if len(repo.records) != 0 {
		t.Error("unknown type still recorded")
	}
}

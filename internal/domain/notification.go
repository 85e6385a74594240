package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType identifies which workflow event triggered an email.
type NotificationType string

const (
	NotificationQuestionnaireSubmitted NotificationType = "questionnaire_submitted"
	NotificationAssessmentUploaded     NotificationType = "assessment_uploaded"
	NotificationAssessmentCompleted    NotificationType = "assessment_completed"
)

// EmailNotification records a processed notification. Delivery is log-only;
// the row exists so the portal can show a notification history.
type EmailNotification struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AssessmentID *primitive.ObjectID `bson:"assessment_id,omitempty" json:"assessment_id"`
	Type         NotificationType    `bson:"notification_type" json:"notification_type"`
	Recipient    string              `bson:"recipient_email" json:"recipient_email"`
	Subject      string              `bson:"subject" json:"subject"`
	Status       string              `bson:"status" json:"status"`
	SentAt       time.Time           `bson:"sent_at" json:"sent_at"`
}

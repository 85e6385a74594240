package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentStatus tracks the two-phase questionnaire/review lifecycle.
type AssessmentStatus string

const (
	StatusPending    AssessmentStatus = "pending"
	StatusInProgress AssessmentStatus = "in_progress" // client-declared only, never enforced server-side
	StatusSubmitted  AssessmentStatus = "submitted"   // questionnaire submit action invoked
	StatusCompleted  AssessmentStatus = "completed"   // review explicitly marked complete
	StatusArchived   AssessmentStatus = "archived"    // superseded by a newer assessment (terminal)
)

// UploadRecord stores metadata about a file uploaded into a section.
// The actual bytes live in the blob store; the record is also copied into
// the uploaded_files index for report queries.
type UploadRecord struct {
	FileName    string    `bson:"filename" json:"filename"`
	StoragePath string    `bson:"storage_path" json:"storage_path"`
	PublicURL   string    `bson:"public_url" json:"public_url"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
	FileSize    int64     `bson:"file_size" json:"file_size"`
	MimeType    string    `bson:"mime_type" json:"mime_type"`
}

// Section holds one wizard section's answers and its uploaded files.
// Fields is schema-less; values are validated against a template's
// FieldDefinition at the client boundary only.
type Section struct {
	Fields  map[string]FieldValue `bson:"fields,omitempty" json:"fields,omitempty"`
	Uploads []UploadRecord        `bson:"uploads,omitempty" json:"uploads,omitempty"`
}

// AssessmentState carries the review-phase state alongside the questionnaire.
// Attachments here belong to the review itself, distinct from section uploads.
type AssessmentState struct {
	Status      AssessmentStatus `bson:"status" json:"status"`
	Findings    string           `bson:"findings" json:"findings"`
	Attachments []UploadRecord   `bson:"attachments" json:"attachments"`
	Submitted   bool             `bson:"submitted" json:"submitted"`
	SubmittedAt *time.Time       `bson:"submitted_at,omitempty" json:"submitted_at"`
	CompletedAt *time.Time       `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	UpdatedAt   *time.Time       `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Timestamps records document lifecycle times.
type Timestamps struct {
	Created  time.Time  `bson:"created" json:"created"`
	Updated  time.Time  `bson:"updated" json:"updated"`
	Archived *time.Time `bson:"archived,omitempty" json:"archived,omitempty"`
}

// AssessmentDocument is one questionnaire-plus-review document for a client.
// client_id is NOT unique: a client may have several rows, and the most
// recent by timestamps.created is the active one.
type AssessmentDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID   string             `bson:"client_id" json:"client_id"`
	Sections   map[string]Section `bson:"sections" json:"sections"`
	Assessment AssessmentState    `bson:"assessment" json:"assessment"`
	Timestamps Timestamps         `bson:"timestamps" json:"timestamps"`
}

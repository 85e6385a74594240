package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadedFile is the flat, denormalized index entry kept for every file
// upload, alongside the UploadRecord embedded in the owning section. The
// two must stay consistent; the index exists for report and list queries.
type UploadedFile struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AssessmentID     *primitive.ObjectID `bson:"assessment_id,omitempty" json:"assessment_id"` // nil when no document existed at upload time
	Section          string              `bson:"section" json:"section"`
	FileName         string              `bson:"filename" json:"filename"`
	OriginalFileName string              `bson:"original_filename" json:"original_filename"`
	FileSize         int64               `bson:"file_size" json:"file_size"`
	MimeType         string              `bson:"mime_type" json:"mime_type"`
	StoragePath      string              `bson:"storage_path" json:"storage_path"`
	UploadedBy       string              `bson:"uploaded_by" json:"uploaded_by"` // client_id of the uploader
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
}

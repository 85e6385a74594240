package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"
	"alphacloud/assessment-portal/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMissingFileData = errors.New("file data and filename are required")
	ErrBlobStore       = errors.New("upload failed")
)

// UploadResult echoes the stored file's coordinates back to the client.
type UploadResult struct {
	PublicURL   string `json:"publicUrl"`
	StoragePath string `json:"storagePath"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	MimeType    string `json:"mimeType"`
}

// UploadService is the upload registrar: it stores the bytes, appends the
// record to the owning section (append-only), and mirrors it into the
// global uploaded_files index.
type UploadService interface {
	Register(ctx context.Context, clientID, section, fileName, fileData string) (*UploadResult, error)
}

type uploadService struct {
	assessmentRepo repository.AssessmentRepository
	fileRepo       repository.UploadedFileRepository
	fileStorage    storage.FileStorage
	now            func() time.Time
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(
	assessmentRepo repository.AssessmentRepository,
	fileRepo repository.UploadedFileRepository,
	fileStorage storage.FileStorage,
) UploadService {
	return &uploadService{
		assessmentRepo: assessmentRepo,
		fileRepo:       fileRepo,
		fileStorage:    fileStorage,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Register handles one file upload. The payload arrives as a data URL and
// is fully buffered in memory before the blob write. A failure after the
// blob write leaves an orphaned blob; that inconsistency is accepted and
// not compensated.
func (s *uploadService) Register(ctx context.Context, clientID, section, fileName, fileData string) (*UploadResult, error) {
	if fileData == "" || fileName == "" {
		return nil, ErrMissingFileData
	}

	mimeType, payload, err := decodeDataURL(fileData)
	if err != nil {
		return nil, err
	}

	now := s.now()
	storagePath := fmt.Sprintf("%s/%s/%d-%s", clientID, section, now.UnixMilli(), fileName)

	publicURL, err := s.fileStorage.Upload(ctx, storagePath, mimeType, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	record := domain.UploadRecord{
		FileName:    fileName,
		StoragePath: storagePath,
		PublicURL:   publicURL,
		UploadedAt:  now,
		FileSize:    int64(len(payload)),
		MimeType:    mimeType,
	}

	// Append the record into the owning section when a document exists.
	// An upload before the first save only lands in the index.
	var assessmentID *primitive.ObjectID
	doc, err := s.assessmentRepo.GetLatestByClientID(ctx, clientID)
	if err == nil {
		updated := AppendUpload(doc, section, record, now)
		if err := s.assessmentRepo.Update(ctx, updated); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
		}
		assessmentID = &doc.ID
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	indexEntry := &domain.UploadedFile{
		AssessmentID:     assessmentID,
		Section:          section,
		FileName:         fileName,
		OriginalFileName: fileName,
		FileSize:         int64(len(payload)),
		MimeType:         mimeType,
		StoragePath:      storagePath,
		UploadedBy:       clientID,
		CreatedAt:        now,
	}
	if _, err := s.fileRepo.Create(ctx, indexEntry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}

	return &UploadResult{
		PublicURL:   publicURL,
		StoragePath: storagePath,
		FileName:    fileName,
		FileSize:    int64(len(payload)),
		MimeType:    mimeType,
	}, nil
}

// decodeDataURL splits a "data:<mime>;base64,<payload>" transport string
// into its MIME type and raw bytes.
func decodeDataURL(fileData string) (string, []byte, error) {
	head, encoded, found := strings.Cut(fileData, ",")
	if !found {
		return "", nil, ErrMissingFileData
	}

	mimeType := "application/octet-stream"
	meta := strings.TrimPrefix(head, "data:")
	if idx := strings.Index(meta, ";"); idx >= 0 {
		meta = meta[:idx]
	}
	if meta != "" {
		mimeType = meta
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrMissingFileData
	}
	return mimeType, payload, nil
}

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"alphacloud/assessment-portal/internal/domain"
)

func dataURL(mime, content string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func newUploadFixture() (*uploadService, *fakeAssessmentRepo, *fakeFileRepo, *fakeStorage) {
	repo := &fakeAssessmentRepo{}
	files := &fakeFileRepo{}
	blob := &fakeStorage{}
	svc := NewUploadService(repo, files, blob).(*uploadService)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, repo, files, blob
}

func TestRegisterAppendsToSectionUploads(t *testing.T) {
	svc, repo, files, blob := newUploadFixture()
	ctx := context.Background()

	doc := ApplyUpdate(nil, map[string]domain.Section{
		"D": sectionWith(map[string]domain.FieldValue{"storage_type": domain.StringValue("s3")}),
	}, false, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	doc.ClientID = "default"
	id, err := repo.Create(ctx, doc)
	if err != nil {
		t.Fatalf("seed Create() error = %v", err)
	}

	first, err := svc.Register(ctx, "default", "D", "first.pdf", dataURL("application/pdf", "alpha"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	second, err := svc.Register(ctx, "default", "D", "second.pdf", dataURL("application/pdf", "beta"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored, _ := repo.GetByID(ctx, id)
	uploads := stored.Sections["D"].Uploads
	if len(uploads) != 2 {
		t.Fatalf("uploads = %d, want 2", len(uploads))
	}
	if uploads[0].FileName != "first.pdf" || uploads[1].FileName != "second.pdf" {
		t.Errorf("upload order broken: %+v", uploads)
	}
	// The section's answered fields survive the deep merge.
	if got := stored.Sections["D"].Fields["storage_type"].String(); got != "s3" {
		t.Errorf("fields lost on upload: storage_type = %q", got)
	}

	if first.FileSize != int64(len("alpha")) || second.FileSize != int64(len("beta")) {
		t.Errorf("file sizes = %d, %d", first.FileSize, second.FileSize)
	}
	if first.MimeType != "application/pdf" {
		t.Errorf("mime type = %q", first.MimeType)
	}
	if _, ok := blob.uploads[first.StoragePath]; !ok {
		t.Errorf("blob not stored at %q", first.StoragePath)
	}

	// Both files mirrored into the index, tagged with the document id.
	indexed, _ := files.GetByAssessmentID(ctx, id)
	if len(indexed) != 2 {
		t.Fatalf("indexed files = %d, want 2", len(indexed))
	}
	if indexed[0].Section != "D" {
		t.Errorf("index section = %q", indexed[0].Section)
	}
}

func TestRegisterWithoutDocumentIndexesOnly(t *testing.T) {
	svc, repo, files, _ := newUploadFixture()

	result, err := svc.Register(context.Background(), "default", "A", "notes.txt", dataURL("text/plain", "hi"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.PublicURL == "" {
		t.Error("missing public URL")
	}
	if len(repo.docs) != 0 {
		t.Error("upload created a document")
	}
	if len(files.files) != 1 {
		t.Fatalf("indexed files = %d, want 1", len(files.files))
	}
	if files.files[0].AssessmentID != nil {
		t.Error("index entry tagged with a document id that does not exist")
	}
}

func TestRegisterRejectsBadPayloads(t *testing.T) {
	svc, _, _, _ := newUploadFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		fileName string
		fileData string
	}{
		{name: "empty data", fileName: "a.txt", fileData: ""},
		{name: "empty filename", fileName: "", fileData: dataURL("text/plain", "x")},
		{name: "no comma separator", fileName: "a.txt", fileData: "data:text/plain;base64"},
		{name: "invalid base64", fileName: "a.txt", fileData: "data:text/plain;base64,@@@@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, "default", "A", tt.fileName, tt.fileData)
			if !errors.Is(err, ErrMissingFileData) {
				t.Errorf("error = %v, want ErrMissingFileData", err)
			}
		})
	}
}

func TestRegisterBlobStoreFailure(t *testing.T) {
	svc, _, files, blob := newUploadFixture()
	blob.failPut = true

	_, err := svc.Register(context.Background(), "default", "A", "a.txt", dataURL("text/plain", "x"))
	if !errors.Is(err, ErrBlobStore) {
		t.Fatalf("error = %v, want ErrBlobStore", err)
	}
	// The failure text from the provider is carried along.
	if got := err.Error(); got == ErrBlobStore.Error() {
		t.Errorf("provider detail lost: %q", got)
	}
	if len(files.files) != 0 {
		t.Error("failed upload still indexed")
	}
}

func TestDecodeDataURLDefaultsMimeType(t *testing.T) {
	mime, payload, err := decodeDataURL("," + base64.StdEncoding.EncodeToString([]byte("raw")))
	if err != nil {
		t.Fatalf("decodeDataURL() error = %v", err)
	}
	if mime != "application/octet-stream" {
		t.Errorf("mime = %q, want application/octet-stream", mime)
	}
	if string(payload) != "raw" {
		t.Errorf("payload = %q", payload)
	}
}

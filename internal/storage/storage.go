package storage

import (
	"context"
)

// FileStorage defines the interface for object storage operations. Uploads
// are fully buffered: the handler decodes the transport encoding into
// memory and hands the bytes over in one call, no streaming.
type FileStorage interface {
	// Upload writes an object and returns its public URL. The bucket is
	// public; no presigning is involved.
	Upload(ctx context.Context, objectKey string, contentType string, data []byte) (string, error)

	// PublicURL computes the public URL for an already-stored object.
	PublicURL(objectKey string) string

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

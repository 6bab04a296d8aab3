package port

import (
	"context"
	"io"
)

// UploadInput describes a source statement to archive.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where an archived statement landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage keeps the original statement files behind analyses.
// Delete removes an object whose analysis could not be recorded; presigned
// URLs let clients download an archived source.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}

package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to stage an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful staging upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the staging object store where picked files live
// between attachment and the submission drain.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
}

package shared

import (
	"context"
	"io"
)

type Metadata map[string]string

// Blob is the capability surface this library layers convenience on
// top of. Pass an empty leaseID when the blob is not leased.
type Blob interface {
	Leaser
	Exists(ctx context.Context) (bool, error)
	SetMetadata(ctx context.Context, metadata Metadata, leaseID string) error
	Upload(ctx context.Context, content io.Reader, leaseID string) error
	Append(ctx context.Context, content io.ReadSeeker, leaseID string) error
	Download(ctx context.Context, leaseID string) (io.ReadCloser, error)
	Delete(ctx context.Context, leaseID string) error
}

package storage

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object without its body.
type ObjectInfo struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Gateway is the thin blob-store surface both the admission gate and
// the fan-out job depend on. Constructed once at startup and injected.
type Gateway interface {
	// IssueWriteCredential returns a time-boxed URL authorizing one
	// write of the given key/content-type with the metadata attached
	// to the stored object. No side effects until the client writes.
	IssueWriteCredential(ctx context.Context, key string, contentType string, metadata map[string]string, ttl time.Duration) (string, error)

	// IssueReadCredential returns a time-boxed URL authorizing reads
	// of the given key. Handed to the delegated-upload worker.
	IssueReadCredential(ctx context.Context, key string, ttl time.Duration) (string, error)

	// ReadObjectMetadata inspects a stored object without fetching
	// its body. Returns ErrObjectNotFound when the key is absent.
	ReadObjectMetadata(ctx context.Context, key string) (*ObjectInfo, error)

	// DeleteObject removes the object. Callers treat failures as
	// best-effort: log, never escalate.
	DeleteObject(ctx context.Context, key string) error
}

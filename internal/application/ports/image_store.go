package ports

import (
	"context"
	"io"
)

// ImageStore holds the stored image objects behind the references the
// catalog keeps. The upload pipeline producing those references lives
// outside the core.
type ImageStore interface {
	Put(ctx context.Context, ref string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, refs []string) error
}

package images

import (
	"context"
	"io"

	"github.com/openmarket/marketplace-service/internal/application/ports"
)

// NullStore discards images. Used when no object store is configured and in
// tests that do not care about image bytes.
type NullStore struct{}

var _ ports.ImageStore = (*NullStore)(nil)

func NewNullStore() *NullStore {
	return &NullStore{}
}

func (*NullStore) Put(ctx context.Context, ref string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (*NullStore) Remove(ctx context.Context, refs []string) error {
	return nil
}

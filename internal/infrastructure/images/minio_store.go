package images

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/config"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// MinioStore keeps the image objects the catalog references. The references
// the domain stores are object keys within one bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

var _ ports.ImageStore = (*MinioStore)(nil)

func NewMinioStore(cfg config.ImagesConfig, log *logger.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	store := &MinioStore{client: client, bucket: cfg.Bucket, log: log}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioStore) Put(ctx context.Context, ref string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, ref, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStore) Remove(ctx context.Context, refs []string) error {
	var firstErr error
	for _, ref := range refs {
		if err := s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{}); err != nil {
			s.log.Warn("failed to remove image object", "ref", ref, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

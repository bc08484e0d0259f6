package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// MinioStore uploads to an S3-compatible bucket. The client is created on
// first use so commands that never publish work without [storage].
type MinioStore struct {
	cfg config.StorageConfig
	log *slog.Logger

	once   sync.Once
	client *minio.Client
	err    error
}

// NewMinioStore creates a store for the configured bucket
func NewMinioStore(cfg *config.RuntimeConfig, log *slog.Logger) *MinioStore {
	return &MinioStore{cfg: cfg.Storage, log: log.With("component", "objectstore")}
}

func (s *MinioStore) connect() (*minio.Client, error) {
	s.once.Do(func() {
		if !s.cfg.Configured() {
			s.err = fmt.Errorf("no [storage] endpoint and bucket configured in nftops.toml")
			return
		}
		secure := true
		if s.cfg.Secure != nil {
			secure = *s.cfg.Secure
		}
		s.client, s.err = minio.New(s.cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(s.cfg.AccessKey, s.cfg.SecretKey, ""),
			Secure: secure,
			Region: s.cfg.Region,
		})
		if s.err != nil {
			s.err = fmt.Errorf("failed to create storage client: %w", s.err)
		}
	})
	return s.client, s.err
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	client, err := s.connect()
	if err != nil {
		return err
	}

	exists, err := client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.cfg.Bucket, err)
	}
	if exists {
		return nil
	}

	s.log.Info("creating bucket", "bucket", s.cfg.Bucket, "region", s.cfg.Region)
	if err := client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.cfg.Bucket, err)
	}
	return nil
}

// Upload puts a local file under key
func (s *MinioStore) Upload(ctx context.Context, key, path, contentType string) error {
	client, err := s.connect()
	if err != nil {
		return err
	}

	info, err := client.FPutObject(ctx, s.cfg.Bucket, key, path, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	s.log.Debug("uploaded object", "key", key, "size", info.Size, "etag", info.ETag)
	return nil
}

// Location is the bucket URL objects are published under
func (s *MinioStore) Location() string {
	if !s.cfg.Configured() {
		return ""
	}
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, s.cfg.Prefix)
}

var _ usecase.ObjectStore = (*MinioStore)(nil)

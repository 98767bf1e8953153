package foodsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
)

// S3Loader downloads the CSV export from S3-compatible storage (S3, R2, MinIO).
type S3Loader struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewS3Loader constructs the storage client.
func NewS3Loader(cfg config.S3Config, logger *slog.Logger) (*S3Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://"),
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Loader{
		client: client,
		bucket: cfg.Bucket,
		key:    strings.TrimPrefix(cfg.Key, "/"),
		logger: logger.With("component", "foodsource.s3"),
	}, nil
}

func (l *S3Loader) Name() string {
	return "s3:" + l.bucket + "/" + l.key
}

func (l *S3Loader) Load(ctx context.Context) ([]recommender.FoodRecord, error) {
	obj, err := l.client.GetObject(ctx, l.bucket, l.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat object: %w", err)
	}
	l.logger.Debug("downloading food table", "bucket", l.bucket, "key", l.key, "size", info.Size, "etag", info.ETag)
	return ParseCSV(obj)
}

func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ Loader = (*S3Loader)(nil)

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// objectUploader is the part of manager.Uploader used by S3Storage.
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Storage struct {
	uploader objectUploader
	bucket   string
	prefix   string
	log      *zap.Logger
}

// NewS3Storage loads the default AWS credential chain for region.
func NewS3Storage(ctx context.Context, bucket, region, prefix string, log *zap.Logger) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return newS3Storage(manager.NewUploader(client), bucket, prefix, log), nil
}

func newS3Storage(up objectUploader, bucket, prefix string, log *zap.Logger) *S3Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &S3Storage{uploader: up, bucket: bucket, prefix: prefix, log: log}
}

func (s *S3Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(s.prefix, folder, filename)
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.log.Debug("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key))
	return out.Location, nil
}

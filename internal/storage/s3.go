package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores documents in an S3 bucket using the upload manager
// (multipart for large bodies).
type S3Uploader struct {
	bucket   string
	uploader *manager.Uploader
	logger   *slog.Logger
}

// NewS3Uploader resolves AWS credentials from the default chain and
// targets the given bucket.
func NewS3Uploader(ctx context.Context, bucket, region string, logger *slog.Logger) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Uploader{
		bucket:   bucket,
		uploader: manager.NewUploader(client),
		logger:   logger.With("component", "storage"),
	}, nil
}

// Upload streams body to s3://bucket/key.
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	u.logger.Debug("s3 upload", "bucket", u.bucket, "key", key)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", u.bucket, key, err)
	}
	return nil
}

// Package upload ships exported registers to S3.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/hashicorp/go-hclog"

	"github.com/riskreg/riskreg/pkg/shared/config"
)

const defaultRegion = "eu-west-2"

// S3Uploader puts export payloads into a bucket.
type S3Uploader struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	prefix   string
	logger   hclog.Logger
}

// NewS3Uploader builds an uploader from the export S3 configuration.
// Credentials come from the default AWS chain.
func NewS3Uploader(cfg config.S3, logger hclog.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not set")
	}

	awsCfg := &aws.Config{
		Region: aws.String(config.SetThen(cfg.Region, defaultRegion)),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewWithAPI(s3manager.NewUploader(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

// NewWithAPI wraps an existing s3manager uploader.
func NewWithAPI(api s3manageriface.UploaderAPI, bucket, prefix string, logger hclog.Logger) *S3Uploader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &S3Uploader{
		uploader: api,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		logger:   logger,
	}
}

// ObjectKey joins the configured prefix with key.
func (u *S3Uploader) ObjectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if u.prefix == "" {
		return key
	}
	return path.Join(u.prefix, key)
}

// Upload stores data under key and returns the object location.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	objectKey := u.ObjectKey(key)
	if objectKey == "" {
		return "", fmt.Errorf("s3 object key is empty")
	}

	u.logger.Info("uploading export", "bucket", u.bucket, "key", objectKey, "bytes", len(data))
	result, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q to bucket %q: %w", objectKey, u.bucket, err)
	}

	u.logger.Debug("uploaded export", "location", result.Location)
	return result.Location, nil
}

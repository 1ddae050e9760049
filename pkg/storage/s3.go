package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/yatube-lab/backend/config"
)

// imageCacheControl lets browsers keep images, keys are never reused.
const imageCacheControl = "public, max-age=31536000, immutable"

type s3Storage struct {
	uploader       *s3manager.Uploader
	publicEndpoint string
}

// NewS3Storage connects to any S3 compatible endpoint, such as minio in a
// local setup, using path-style addressing.
func NewS3Storage(cfg config.S3Configs) (Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	public := cfg.PublicEndpoint
	if public == "" {
		public = cfg.Endpoint
	}

	return &s3Storage{
		uploader:       s3manager.NewUploader(sess),
		publicEndpoint: strings.TrimSuffix(public, "/"),
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	key := object.Key(uuid.NewString())

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(object.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(object.Data),
		ContentType:  aws.String(object.Mime),
		CacheControl: aws.String(imageCacheControl),
		ACL:          aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot put %s/%s: %w", object.Bucket, key, err)
	}

	return &UploadResponse{
		URL: s.publicURL(object.Bucket, key),
		Key: key,
	}, nil
}

func (s *s3Storage) publicURL(bucket, key string) string {
	return s.publicEndpoint + "/" + bucket + "/" + key
}

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	appConfig "tennismate-api/core/config"
	"tennismate-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader wraps the S3 client used for profile and coach photos.
type Uploader struct {
	client *s3.Client
	bucket string
	public string
}

func NewUploader(cfg appConfig.S3Config) *Uploader {
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	})

	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		public: strings.TrimSuffix(cfg.PublicURL, "/"),
	}
}

// Upload stores the object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Uploader:Upload", err)
		return "", err
	}

	return fmt.Sprintf("%s/%s", u.public, key), nil
}

// Delete removes an object, used when a photo is replaced.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Uploader:Delete", err)
	}
	return err
}

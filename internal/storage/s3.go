// Package storage uploads citizen photos to an S3-compatible object
// store. MinIO works out of the box via the custom base endpoint.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/openjustice/crimetrack/internal/config"
)

// Uploader wraps an S3 client for a single bucket.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewUploader builds the S3 client from static credentials. Returns an
// error when the bucket is not configured so main can decide whether
// uploads are a hard requirement for this deployment.
func NewUploader(ctx context.Context, cfg config.S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: S3_BUCKET not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO serves buckets by path, not subdomain
		}
	})
	return &Uploader{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

// objectKey shards uploads by date so a bucket listing stays navigable.
func objectKey(prefix string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload streams body into the bucket and returns the object's public
// URL. contentType is stored so the object serves with correct headers.
func (u *Uploader) Upload(ctx context.Context, prefix, contentType string, body io.Reader) (string, error) {
	key := objectKey(prefix)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}

// ParseObjectURL splits the s3://bucket/key form Upload falls back to
// when no public base URL is configured. Callers use a positive match
// to decide that a stored photo URL needs presigning before it can be
// handed to a browser.
func ParseObjectURL(raw string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(raw, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// PresignGet returns a time-limited download URL for a stored object,
// used when the bucket is private.
func (u *Uploader) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presign := s3.NewPresignClient(u.client)
	req, err := presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

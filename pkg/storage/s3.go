package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Store
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PresignAPI is the subset of the S3 presign client used by S3Store
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store stores images in a single S3 bucket
type S3Store struct {
	api       S3API
	presigner PresignAPI
	bucket    string
	pageSize  int32
}

// NewS3Store creates a store backed by the bucket. A pageSize of 0 uses the S3 default.
func NewS3Store(cfg aws.Config, bucket string, pageSize int32) *S3Store {
	client := s3.NewFromConfig(cfg)
	return NewS3StoreWithAPI(client, s3.NewPresignClient(client), bucket, pageSize)
}

// NewS3StoreWithAPI creates a store over explicit API implementations
func NewS3StoreWithAPI(api S3API, presigner PresignAPI, bucket string, pageSize int32) *S3Store {
	return &S3Store{
		api:       api,
		presigner: presigner,
		bucket:    bucket,
		pageSize:  pageSize,
	}
}

// PutImage uploads data as a PNG object
func (s *S3Store) PutImage(ctx context.Context, key string, data []byte) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentTypePNG),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// ListPage lists one page of object keys. The token is the S3 continuation token.
func (s *S3Store) ListPage(ctx context.Context, token string) (Page, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if token != "" {
		input.ContinuationToken = aws.String(token)
	}
	if s.pageSize > 0 {
		input.MaxKeys = aws.Int32(s.pageSize)
	}

	out, err := s.api.ListObjectsV2(ctx, input)
	if err != nil {
		return Page{}, fmt.Errorf("failed to list objects: %w", err)
	}

	page := Page{Keys: make([]string, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Keys = append(page.Keys, aws.ToString(obj.Key))
	}
	// S3 only sets the continuation token on truncated listings
	page.NextToken = aws.ToString(out.NextContinuationToken)
	return page, nil
}

// PresignURL returns a presigned GetObject URL valid for ttl
func (s *S3Store) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}

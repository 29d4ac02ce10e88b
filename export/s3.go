// FILE: lixenwraith/recorder/export/s3.go
package export

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API abstracts the S3 client methods used by S3
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 exports snapshots as objects in an S3 bucket, under an optional key prefix
type S3 struct {
	client s3API
	bucket string
	prefix string
}

// NewS3 creates an S3 exporter using the default AWS credential chain
func NewS3(ctx context.Context, bucket, prefix string) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: load AWS config: %w", err)
	}
	return &S3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (b *S3) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Remove deletes the object. S3 reports success for keys that do not exist.
func (b *S3) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	key := b.key(name)
	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("export: s3 delete %s: %w", key, err)
	}
	return nil
}

// Write uploads the snapshot
func (b *S3) Write(ctx context.Context, name string, r io.Reader, size int64) error {
	if err := checkName(name); err != nil {
		return err
	}
	key := b.key(name)
	input := &s3.PutObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
		Body:   r,
	}
	if size >= 0 {
		input.ContentLength = &size
	}
	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("export: s3 upload %s: %w", key, err)
	}
	return nil
}

// Package storage writes uploaded files to the configured backend.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Backend persists a named object. Implementations must not leave a partial object behind when
// Put fails.
type Backend interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) error
}

// DiskBackend stores files in a local directory that is also served under the public prefix.
type DiskBackend struct {
	dir string
}

// NewDiskBackend creates dir if it does not exist so the first upload after startup cannot fail on it.
func NewDiskBackend(dir string) (*DiskBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &DiskBackend{dir: dir}, nil
}

func (d *DiskBackend) Dir() string {
	return d.dir
}

// Put writes to a temporary file first and renames it into place.
func (d *DiskBackend) Put(ctx context.Context, name, _ string, body io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("invalid object name %q", name)
	}

	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("file", tmpName).Msg("Failed to remove temporary upload")
		}
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(d.dir, name)); err != nil {
		cleanup()
		return err
	}
	return nil
}

// ObjectPutter is the subset of *s3.Client the S3 backend uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend stores files in a bucket under the "uploads/" prefix.
type S3Backend struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Backend(client ObjectPutter, bucket string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket, prefix: "uploads/"}
}

func (b *S3Backend) Key(name string) string {
	return b.prefix + name
}

func (b *S3Backend) Put(ctx context.Context, name, contentType string, body io.Reader, size int64) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.Key(name)),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("putting s3 object %s: %w", b.Key(name), err)
	}
	return nil
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jahua/prism-portfolio/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploadURL = regexp.MustCompile(`^/uploads/[0-9a-f]{32}\.png$`)

func newDiskUploader(t *testing.T, opts ...UploaderOption) (*Uploader, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	backend, err := NewDiskBackend(dir)
	require.NoError(t, err)
	return NewUploader(backend, opts...), dir
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewDiskBackendCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewDiskBackend(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStorePNG(t *testing.T) {
	u, dir := newDiskUploader(t)
	body := bytes.Repeat([]byte{0x89}, 1<<20)

	url, err := u.Store(context.Background(), "photo.PNG", "image/png", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Regexp(t, uploadURL, url)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, body, stored)
	assert.Len(t, listFiles(t, dir), 1)
}

func TestStoreRejectsOversizedFile(t *testing.T) {
	u, dir := newDiskUploader(t)
	body := bytes.Repeat([]byte{1}, 6<<20)

	_, err := u.Store(context.Background(), "big.png", "image/png", bytes.NewReader(body))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPayloadTooLarge)
	assert.Equal(t, 413, errs.StatusOf(err))
	assert.Empty(t, listFiles(t, dir))
}

func TestStoreAcceptsExactlyMaxBytes(t *testing.T) {
	u, _ := newDiskUploader(t, WithMaxBytes(10))
	_, err := u.Store(context.Background(), "a.gif", "image/gif", bytes.NewReader(make([]byte, 10)))
	assert.NoError(t, err)

	_, err = u.Store(context.Background(), "a.gif", "image/gif", bytes.NewReader(make([]byte, 11)))
	assert.ErrorIs(t, err, errs.ErrPayloadTooLarge)
}

func TestStoreRejectsDisallowedType(t *testing.T) {
	u, dir := newDiskUploader(t)

	_, err := u.Store(context.Background(), "setup.exe", "application/x-msdownload", strings.NewReader("MZ"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidFileType)
	assert.Equal(t, 400, errs.StatusOf(err))
	assert.Empty(t, listFiles(t, dir))
}

func TestAllowed(t *testing.T) {
	u := NewUploader(nil)
	assert.True(t, u.Allowed("image/jpeg"))
	assert.True(t, u.Allowed("application/pdf"))
	assert.True(t, u.Allowed("IMAGE/PNG"))
	assert.True(t, u.Allowed("image/webp; charset=binary"))
	assert.False(t, u.Allowed("image/svg+xml"))
	assert.False(t, u.Allowed(""))
}

func TestPublicPrefix(t *testing.T) {
	u, _ := newDiskUploader(t, WithPublicPrefix("https://cdn.example.com/uploads/"))
	url, err := u.Store(context.Background(), "cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.example\.com/uploads/[0-9a-f]{32}\.pdf$`, url)
}

type failingBackend struct{}

func (failingBackend) Put(context.Context, string, string, io.Reader, int64) error {
	return errors.New("disk full")
}

func TestStoreBackendFailure(t *testing.T) {
	u := NewUploader(failingBackend{})
	_, err := u.Store(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.Equal(t, 500, errs.StatusOf(err))
}

func TestDiskBackendRejectsPathNames(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDiskBackend(dir)
	require.NoError(t, err)

	err = b.Put(context.Background(), "../escape.png", "image/png", strings.NewReader("x"), 1)
	assert.Error(t, err)
	assert.Empty(t, listFiles(t, dir))
}

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (r *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	r.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3BackendPut(t *testing.T) {
	putter := &recordingPutter{}
	u := NewUploader(NewS3Backend(putter, "site-assets"))

	url, err := u.Store(context.Background(), "x.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, uploadURL, url)

	require.NotNil(t, putter.input)
	assert.Equal(t, "site-assets", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "uploads/"+strings.TrimPrefix(url, "/uploads/"), aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(len("png-bytes")), aws.ToInt64(putter.input.ContentLength))
	assert.Equal(t, []byte("png-bytes"), putter.body)
}

package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jahua/prism-portfolio/errs"
)

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes int64 = 5 << 20

// AllowedTypes lists the accepted content types.
var AllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"application/pdf",
}

// Uploader validates an incoming file, gives it a random name and hands it to a Backend.
type Uploader struct {
	backend      Backend
	maxBytes     int64
	publicPrefix string
	allowed      map[string]struct{}
}

type UploaderOption func(*Uploader)

func WithMaxBytes(n int64) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.maxBytes = n
		}
	}
}

// WithPublicPrefix sets the URL prefix returned for stored files, "/uploads" by default.
func WithPublicPrefix(prefix string) UploaderOption {
	return func(u *Uploader) {
		if prefix != "" {
			u.publicPrefix = strings.TrimRight(prefix, "/")
		}
	}
}

func NewUploader(backend Backend, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		backend:      backend,
		maxBytes:     DefaultMaxBytes,
		publicPrefix: "/uploads",
		allowed:      make(map[string]struct{}, len(AllowedTypes)),
	}
	for _, t := range AllowedTypes {
		u.allowed[t] = struct{}{}
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Allowed reports whether contentType, parameters ignored, is accepted.
func (u *Uploader) Allowed(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	_, ok := u.allowed[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}

// File is an accepted upload held in memory until it is saved.
type File struct {
	Name        string
	ContentType string
	data        []byte
}

func (f *File) Size() int64 {
	return int64(len(f.data))
}

// Accept checks the declared content type and reads at most maxBytes from r.
func (u *Uploader) Accept(originalName, contentType string, r io.Reader) (*File, error) {
	if !u.Allowed(contentType) {
		return nil, errs.NewInvalidFileTypeError(contentType, AllowedTypes)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewPayloadTooLargeError(u.maxBytes)
		}
		return nil, errs.NewStorageError(err)
	}
	if n > u.maxBytes {
		return nil, errs.NewPayloadTooLargeError(u.maxBytes)
	}

	name, err := randomName(originalName)
	if err != nil {
		return nil, errs.NewStorageError(err)
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	return &File{
		Name:        name,
		ContentType: strings.ToLower(strings.TrimSpace(mediaType)),
		data:        buf.Bytes(),
	}, nil
}

// Save writes an accepted file to the backend and returns its public URL.
func (u *Uploader) Save(ctx context.Context, f *File) (string, error) {
	if err := u.backend.Put(ctx, f.Name, f.ContentType, bytes.NewReader(f.data), f.Size()); err != nil {
		return "", errs.NewStorageError(err)
	}
	return u.publicPrefix + "/" + f.Name, nil
}

// Store accepts and saves a file in one step. Nothing reaches the backend when a check fails.
func (u *Uploader) Store(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	f, err := u.Accept(originalName, contentType, r)
	if err != nil {
		return "", err
	}
	return u.Save(ctx, f)
}

// randomName is 16 random bytes in hex followed by the original extension.
func randomName(originalName string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + strings.ToLower(filepath.Ext(originalName)), nil
}

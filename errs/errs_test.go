package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"duplicate key translated by gorm", gorm.ErrDuplicatedKey, http.StatusConflict, ErrAlreadyExists},
		{"duplicate key from driver text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_blogs_slug"`), http.StatusConflict, ErrAlreadyExists},
		{"record not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ErrNotFound},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), http.StatusInternalServerError, ErrDatabaseConnection},
		{"anything else", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "blog", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.is)
			if tt.status != http.StatusNotFound {
				assert.Equal(t, "failed to create blog", err.Details)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NewNotFoundError("Blog not found")))
	assert.Equal(t, http.StatusConflict, StatusOf(fmt.Errorf("wrapped: %w", NewDatabaseError("create", "blog", gorm.ErrDuplicatedKey))))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusOf(NewMaxBodySizeExceededError(10)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestApiErrMatchesCause(t *testing.T) {
	err := NewDatabaseError("find", "Blog", fmt.Errorf("query: %w", gorm.ErrRecordNotFound))
	assert.Equal(t, "Blog not found", err.Message())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApiErrMessages(t *testing.T) {
	err := NewMissingRequiredFieldError("slug")
	assert.Equal(t, "missing required field: slug", err.Message())
	assert.Equal(t, "slug", err.Field)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	wrapped := NewStorageError(errors.New("disk full"))
	assert.Equal(t, "failed to upload image -> disk full", wrapped.GetFullError())

	chained := NewStorageError(NewDatabaseError("save", "upload", errors.New("timeout")))
	assert.Equal(t, "failed to upload image -> database query failed: failed to save upload -> timeout", chained.GetFullError())

	typeErr := NewInvalidFileTypeError("application/x-msdownload", []string{"image/png"})
	assert.Equal(t, `invalid file format: "application/x-msdownload" is not allowed, use one of image/png`, typeErr.Error())
	assert.Equal(t, "invalid file format", typeErr.Message())
}

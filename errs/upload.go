package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidFileType = errors.New("invalid file format")
	ErrPayloadTooLarge = errors.New("file too large")
	ErrMissingFile     = errors.New("no image file provided")
	ErrUnexpectedField = errors.New("unexpected file field")
	ErrStorage         = errors.New("failed to upload image")
)

// image is the multipart field carrying uploads.
const image = "image"

func NewInvalidFileTypeError(contentType string, allowed []string) *ApiErr {
	e := newErr(http.StatusBadRequest, ErrInvalidFileType, image)
	e.Details = fmt.Sprintf("%q is not allowed, use one of %s", contentType, strings.Join(allowed, ", "))
	return e
}

func NewPayloadTooLargeError(maxBytes int64) *ApiErr {
	e := newErr(http.StatusRequestEntityTooLarge, ErrPayloadTooLarge, image)
	e.Details = fmt.Sprintf("maximum size is %d bytes", maxBytes)
	return e
}

func NewMissingFileError() *ApiErr {
	return newErr(http.StatusBadRequest, ErrMissingFile, image)
}

func NewUnexpectedFieldError(field string) *ApiErr {
	e := newErr(http.StatusBadRequest, ErrUnexpectedField, field)
	e.Details = field
	return e
}

func NewStorageError(cause error) *ApiErr {
	e := newErr(http.StatusInternalServerError, ErrStorage, "")
	e.Cause = cause
	return e
}

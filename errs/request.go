package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrPasswordRequired   = errors.New("password required")
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "Unauthorized")
	Forbidden    = NewApiErr(http.StatusForbidden, "Forbidden")
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

func NewInvalidCredentialsError() *ApiErr {
	return newErr(http.StatusUnauthorized, ErrInvalidCredentials, "password")
}

func NewPasswordRequiredError() *ApiErr {
	return newErr(http.StatusBadRequest, ErrPasswordRequired, "password")
}

func NewMissingRequiredFieldError(field string) *ApiErr {
	return newErr(http.StatusBadRequest, fmt.Errorf("%w: %s", ErrMissingRequiredField, field), field)
}

func NewInvalidFieldError(field, reason string) *ApiErr {
	return newErr(http.StatusBadRequest, fmt.Errorf("%w %s: %s", ErrInvalidField, field, reason), field)
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	e := newErr(http.StatusRequestEntityTooLarge, ErrMaxBodySizeExceeded, "body")
	e.Details = fmt.Sprintf("request body exceeds %d bytes", maxSize)
	return e
}

func NewInvalidJSONError(cause error) *ApiErr {
	e := newErr(http.StatusBadRequest, ErrInvalidJSON, "json")
	e.Cause = cause
	return e
}

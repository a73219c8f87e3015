package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ApiErr is an error that knows the HTTP status it should be answered with.
// Message is what clients see; Details, Field and Cause are for logs and validation hints.
type ApiErr struct {
	StatusCode int
	Details    string
	Field      string
	Cause      error

	err error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: errors.New(message)}
}

func newErr(statusCode int, err error, field string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: err, Field: field}
}

func (e *ApiErr) Error() string {
	if e.Details == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
}

// Message is the error text without details, sent to clients under the `error` key.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError follows the cause chain: "outer -> inner -> root".
func (e *ApiErr) GetFullError() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for cause := e.Cause; cause != nil; {
		b.WriteString(" -> ")
		var next *ApiErr
		if !errors.As(cause, &next) {
			b.WriteString(cause.Error())
			break
		}
		b.WriteString(next.Error())
		cause = next.Cause
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches either.
func (e *ApiErr) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.Cause}
}

func NewNotFoundError(message string) *ApiErr {
	return NewApiErr(http.StatusNotFound, message)
}

func NewBadRequestError(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewInternalError(message string) *ApiErr {
	return NewApiErr(http.StatusInternalServerError, message)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an ApiErr.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

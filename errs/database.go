package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError maps a repository error onto an API status. Missing rows become 404 and
// unique violations 409, both phrased as "<entity> not found" / "<entity> already exists".
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var e *ApiErr
	switch {
	case cause == nil:
		e = newErr(http.StatusInternalServerError, ErrDatabaseQuery, "")
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{StatusCode: http.StatusNotFound, err: fmt.Errorf("%s %w", entity, ErrNotFound), Cause: cause}
	case errors.Is(cause, gorm.ErrDuplicatedKey), strings.Contains(cause.Error(), "duplicate key"):
		e = newErr(http.StatusConflict, fmt.Errorf("%s %w", entity, ErrAlreadyExists), "")
	case strings.Contains(cause.Error(), "connection refused"), strings.Contains(cause.Error(), "failed to connect"):
		e = newErr(http.StatusInternalServerError, ErrDatabaseConnection, "")
	default:
		e = newErr(http.StatusInternalServerError, ErrDatabaseQuery, "")
	}
	e.Details = fmt.Sprintf("failed to %s %s", operation, entity)
	e.Cause = cause
	return e
}

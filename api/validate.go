package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/errs"
	"github.com/jahua/prism-portfolio/models"
)

const (
	maxJSONBodyBytes = 5 << 20

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// maxPage keeps (page-1)*limit within int.
	maxPage = math.MaxInt / maxLimit
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// decodeJSON decodes the request body into dst. Decoding onto a populated value keeps the
// fields the body leaves out.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

func parseID(r *http.Request, param, entity string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(param, "not a valid "+entity+" id")
	}
	return id, nil
}

// positiveOrDefault parses a query value, falling back for missing, non-numeric or < 1 input.
func positiveOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parsePagination(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page = min(positiveOrDefault(q.Get("page"), defaultPage), maxPage)
	limit = positiveOrDefault(q.Get("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func validateBlog(b *models.Blog) error {
	if err := firstError(
		required("title", b.Title),
		required("slug", b.Slug),
		required("summary", b.Summary),
		required("content", b.Content),
	); err != nil {
		return err
	}
	if !models.IsURLSafeSlug(b.Slug) {
		return errs.NewInvalidFieldError("slug", "must be URL-safe")
	}
	return nil
}

func validateProject(p *models.Project) error {
	if err := firstError(
		required("title", p.Title),
		required("period", p.Period),
		required("category", p.Category),
		required("section", p.Section),
		required("description", p.Description),
	); err != nil {
		return err
	}
	for i, link := range p.Links {
		field := "links[" + strconv.Itoa(i) + "]"
		if err := firstError(
			required(field+".label", link.Label),
			required(field+".url", link.URL),
		); err != nil {
			return err
		}
		if link.Icon != "" && !link.Icon.Valid() {
			return errs.NewInvalidFieldError(field+".icon", "must be github or external")
		}
	}
	if p.Stars != nil && *p.Stars < 0 {
		return errs.NewInvalidFieldError("stars", "must not be negative")
	}
	return nil
}

func validateProfile(p *models.Profile) error {
	return firstError(
		required("name", p.Name),
		required("title", p.Title),
		required("bio", p.Bio),
	)
}

func validateContact(c ContactRequest) error {
	if err := firstError(
		required("name", c.Name),
		required("email", c.Email),
		required("message", c.Message),
	); err != nil {
		return err
	}
	if !emailPattern.MatchString(c.Email) {
		return errs.NewInvalidFieldError("email", "invalid email address")
	}
	return nil
}

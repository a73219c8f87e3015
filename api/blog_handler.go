package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     BlogStore
}

func newBlogHandler(blogs BlogStore) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
	}
}

// listPublished returns one page of published posts, newest first
// @Summary List published blog posts
// @Tags Blogs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param tag query string false "Only posts with this tag"
// @Success 200 {object} BlogPage
// @Router /api/blogs [get]
func (h blogHandler) listPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		tag := strings.TrimSpace(r.URL.Query().Get("tag"))

		blogs, total, err := h.blogs.ListPublished(r.Context(), tag, (page-1)*limit, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "Blog", err))
			return
		}
		if blogs == nil {
			blogs = []models.Blog{}
		}

		h.responder.WriteJSON(w, http.StatusOK, BlogPage{
			Blogs: blogs,
			Pagination: Pagination{
				Page:  page,
				Limit: limit,
				Total: total,
				Pages: pageCount(total, limit),
			},
		})
	}
}

// listAll returns every post including drafts, without content
// @Summary List all blog posts
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.Blog
// @Router /api/blogs/all [get]
func (h blogHandler) listAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogs.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "Blog", err))
			return
		}
		if blogs == nil {
			blogs = []models.Blog{}
		}

		h.responder.WriteJSON(w, http.StatusOK, blogs)
	}
}

// getBySlug returns a published post with its content
// @Summary Get blog post
// @Tags Blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Blog
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blogs/{slug} [get]
func (h blogHandler) getBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		blog, err := h.blogs.FindPublishedBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// createBlog creates a post
// @Summary Create blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body models.Blog true "Blog post"
// @Success 201 {object} models.Blog
// @Failure 400 {object} ErrorResponse "Missing or invalid field"
// @Failure 409 {object} ErrorResponse "Slug already exists"
// @Router /api/blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var blog models.Blog
		if err := decodeJSON(w, r, &blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Server-assigned
		blog.ID = uuid.Nil
		blog.CreatedAt, blog.UpdatedAt = time.Time{}, time.Time{}
		blog.Normalize()

		if err := validateBlog(&blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogs.Add(r.Context(), &blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Blog", err))
			return
		}

		h.logger.Info().Str("slug", blog.Slug).Bool("published", blog.Published).Msg("Blog created")
		h.responder.WriteJSON(w, http.StatusCreated, blog)
	}
}

// updateBlog applies the supplied fields onto the stored post
// @Summary Update blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Param blog body models.Blog true "Fields to change"
// @Success 200 {object} models.Blog
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blogs/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseID(r, "blogID", "blog")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogs.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Blog", err))
			return
		}

		createdAt := blog.CreatedAt
		if err := decodeJSON(w, r, blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		blog.ID = blogID
		blog.CreatedAt = createdAt
		blog.Normalize()

		if err := validateBlog(blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogs.Update(r.Context(), blog); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// deleteBlog removes a post permanently
// @Summary Delete blog post
// @Tags Blogs
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blogs/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseID(r, "blogID", "blog")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogs.Delete(r.Context(), blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Blog", err))
			return
		}

		h.logger.Info().Str("blogID", blogID.String()).Msg("Blog deleted")
		h.responder.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Blog deleted"})
	}
}

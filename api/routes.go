package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jahua/prism-portfolio/errs"
	"github.com/rs/zerolog/log"
)

// setupRoutes registers the public and admin API routes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		notFound := NewResponder(log.Logger)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			notFound.WriteError(w, errs.NewNotFoundError("Route not found"))
		})

		// Public routes
		r.Post("/auth/login", handlers.authHandler.login())
		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Get("/blogs", handlers.blogHandler.listPublished())
		r.Get("/blogs/{slug}", handlers.blogHandler.getBySlug())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/contact", handlers.contactHandler.sendMessage())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Put("/profile", handlers.profileHandler.updateProfile())

			r.Get("/blogs/all", handlers.blogHandler.listAll())
			r.Post("/blogs", handlers.blogHandler.createBlog())
			r.Put("/blogs/{blogID}", handlers.blogHandler.updateBlog())
			r.Delete("/blogs/{blogID}", handlers.blogHandler.deleteBlog())

			r.Get("/projects/all", handlers.projectHandler.getAllProjects())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Get("/contact", handlers.contactHandler.listMessages())
			r.Post("/upload", handlers.uploadHandler.upload())
		})
	})
}

// setupFileRoutes serves stored uploads and, when configured, the client app.
func setupFileRoutes(r chi.Router, uploadDir, staticDir string) {
	if uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(uploadDir)})))
	}
	if staticDir != "" {
		r.NotFound(spaHandler(staticDir))
	}
}

// filesOnly hides directories and dot files, so stored names cannot be listed and partial
// writes are never served.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, os.ErrNotExist
	}
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// spaHandler serves files from dir and falls back to index.html for client-side routes.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		name := path.Clean("/" + r.URL.Path)
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(name, "/uploads/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}

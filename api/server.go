package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jahua/prism-portfolio/auth"
	"github.com/jahua/prism-portfolio/config"
	"github.com/jahua/prism-portfolio/services"
	"github.com/jahua/prism-portfolio/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Deps are the long-lived collaborators the router hands to its handlers.
type Deps struct {
	Stores   Stores
	Gate     *auth.Gate
	Uploader *storage.Uploader
	Notifier services.Notifier

	AllowedOrigins []string
	// UploadDir is served under /uploads when set.
	UploadDir string
	// StaticDir holds a built single-page app served for non-API routes when set.
	StaticDir string
}

func NewServer(cfg config.Config, deps Deps) (Server, error) {
	startupTime := time.Now()

	router := NewRouter(deps, withStartupTime(startupTime))

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func NewRouter(deps Deps, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(requestIDMiddleware(log.Logger)...)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	chiRouter.Use(corsMiddleware(origins))

	handlers := &routeHandlers{
		authHandler:    newAuthHandler(deps.Gate),
		profileHandler: newProfileHandler(deps.Stores.Profiles),
		blogHandler:    newBlogHandler(deps.Stores.Blogs),
		projectHandler: newProjectHandler(deps.Stores.Projects),
		contactHandler: newContactHandler(deps.Stores.Messages, deps.Notifier),
		uploadHandler:  newUploadHandler(deps.Uploader),
		healthHandler:  newHealthHandler(router.startupTime),
	}

	setupRoutes(chiRouter, handlers, newAuthMiddleware(deps.Gate))
	setupFileRoutes(chiRouter, deps.UploadDir, deps.StaticDir)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

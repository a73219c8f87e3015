package api

import (
	"github.com/jahua/prism-portfolio/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	profileHandler profileHandler
	blogHandler    blogHandler
	projectHandler projectHandler
	contactHandler contactHandler
	uploadHandler  uploadHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Blog not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"failed to find Blog"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type BlogPage struct {
	Blogs      []models.Blog `json:"blogs"`
	Pagination Pagination    `json:"pagination"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  ProjectStore
}

func newProjectHandler(projects ProjectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getAllProjects retrieves all projects ordered by section and position
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /api/projects [get]
// @Router /api/projects/all [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "Project", err))
			return
		}
		if projects == nil {
			projects = []models.Project{}
		}

		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Invalid projectID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Missing or invalid field"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeJSON(w, r, &project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project.ID = uuid.Nil
		project.CreatedAt, project.UpdatedAt = time.Time{}, time.Time{}
		project.Normalize()

		if err := validateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Project", err))
			return
		}

		h.logger.Info().Str("title", project.Title).Msg("Project created")
		h.responder.WriteJSON(w, http.StatusCreated, project)
	}
}

// updateProject applies the supplied fields onto the stored project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.Project true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Project", err))
			return
		}

		createdAt := project.CreatedAt
		if err := decodeJSON(w, r, project); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.ID = projectID
		project.CreatedAt = createdAt
		project.Normalize()

		if err := validateProject(project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Project", err))
			return
		}

		h.logger.Info().Str("projectID", projectID.String()).Msg("Project deleted")
		h.responder.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Project deleted"})
	}
}

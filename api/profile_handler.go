package api

import (
	"errors"
	"net/http"

	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  ProfileStore
}

func newProfileHandler(profiles ProfileStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  profiles,
	}
}

// getProfile returns the site owner's profile
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /api/profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profiles.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Profile", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, profile)
	}
}

// updateProfile merges the body onto the stored profile, or an empty one, and upserts it
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body models.Profile true "Profile fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} ErrorResponse "Missing name, title or bio"
// @Router /api/profile [put]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profiles.Get(r.Context())
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = &models.Profile{}
		case err != nil:
			h.responder.WriteError(w, wrapDatabaseError("find", "Profile", err))
			return
		}

		createdAt := profile.CreatedAt
		if err := decodeJSON(w, r, profile); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		profile.CreatedAt = createdAt
		profile.Normalize()

		if err := validateProfile(profile); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.profiles.Put(r.Context(), profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "Profile", err))
			return
		}

		h.logger.Info().Msg("Profile updated")
		h.responder.WriteJSON(w, http.StatusOK, profile)
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/jahua/prism-portfolio/auth"
	"github.com/jahua/prism-portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	gate      *auth.Gate
}

func newAuthHandler(gate *auth.Gate) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gate:      gate,
	}
}

// login exchanges the admin password for a bearer token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Password required"
// @Failure 401 {object} ErrorResponse "Invalid password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.gate.Login(req.Password)
		switch {
		case errors.Is(err, auth.ErrPasswordRequired):
			h.responder.WriteError(w, errs.NewPasswordRequiredError())
			return
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Failed admin login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		case err != nil:
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, LoginResponse{Token: string(token)})
	}
}

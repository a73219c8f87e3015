package api

import (
	"net/http"

	"github.com/jahua/prism-portfolio/models"
	"github.com/jahua/prism-portfolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	messages  MessageStore
	notifier  services.Notifier
}

func newContactHandler(messages MessageStore, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	if notifier == nil {
		notifier = services.Notifiers{}
	}

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		messages:  messages,
		notifier:  notifier,
	}
}

// sendMessage stores a contact form submission and notifies the owner
// @Summary Send contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Message"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Missing field or invalid email address"
// @Router /api/contact [post]
func (h contactHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := validateContact(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg := models.Message{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}
		if err := h.messages.Add(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Message", err))
			return
		}

		if err := h.notifier.NotifyContact(r.Context(), msg); err != nil {
			h.logger.Error().Err(err).Str("messageID", msg.ID.String()).Msg("Failed to notify about contact message")
		}

		h.responder.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "Message sent successfully"})
	}
}

// listMessages returns the inbox, newest first
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Success 200 {array} models.Message
// @Router /api/contact [get]
func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messages.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "Message", err))
			return
		}
		if messages == nil {
			messages = []models.Message{}
		}

		h.responder.WriteJSON(w, http.StatusOK, messages)
	}
}

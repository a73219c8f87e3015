// Package services informs the site owner about new contact messages.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog/log"
)

// Notifier is told about every stored contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, msg models.Message) error
}

// Notifiers fans a message out to every configured notifier and joins their errors.
type Notifiers []Notifier

func (n Notifiers) NotifyContact(ctx context.Context, msg models.Message) error {
	var errList []error
	for _, notifier := range n {
		if err := notifier.NotifyContact(ctx, msg); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Config enables each channel whose credentials are present.
type Config struct {
	ResendAPIKey string
	ResendFrom   string
	NotifyEmail  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	NotifyPhone      string
}

// FromConfig builds the notifiers that are fully configured. It may return an empty list.
func FromConfig(cfg Config) Notifiers {
	var notifiers Notifiers
	if cfg.ResendAPIKey != "" && cfg.ResendFrom != "" && cfg.NotifyEmail != "" {
		notifiers = append(notifiers, NewMailer(cfg.ResendAPIKey, cfg.ResendFrom, []string{cfg.NotifyEmail}))
		log.Info().Str("to", cfg.NotifyEmail).Msg("Contact e-mail notifications enabled")
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFrom != "" && cfg.NotifyPhone != "" {
		notifiers = append(notifiers, NewTexter(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.NotifyPhone))
		log.Info().Msg("Contact SMS notifications enabled")
	}
	return notifiers
}

func contactSubject(msg models.Message) string {
	return fmt.Sprintf("New message from %s", msg.Name)
}

package services

import (
	"context"
	"fmt"

	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsLimit keeps a notification within a few SMS segments.
const smsLimit = 300

// MessageCreator is the part of the Twilio API service the texter uses.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Texter sends an SMS through Twilio.
type Texter struct {
	api  MessageCreator
	from string
	to   string
}

func NewTexter(accountSID, authToken, from, to string) *Texter {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Texter{api: client.Api, from: from, to: to}
}

func (t *Texter) NotifyContact(ctx context.Context, msg models.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("%s (%s): %s", contactSubject(msg), msg.Email, msg.Message)
	if runes := []rune(body); len(runes) > smsLimit {
		body = string(runes[:smsLimit-1]) + "…"
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(t.to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("sid", *resp.Sid).Msg("Sent contact SMS via Twilio")
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jahua/prism-portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var testMessage = models.Message{Name: "Ada <admin>", Email: "ada@example.com", Message: "Hello\nthere"}

func TestMailerNotifyContact(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	m := NewMailer("re_key", "Site <site@example.com>", []string{"owner@example.com"})
	m.endpoint = srv.URL

	require.NoError(t, m.NotifyContact(context.Background(), testMessage))
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "ada@example.com", got.ReplyTo)
	assert.Equal(t, "New message from Ada <admin>", got.Subject)
	assert.Contains(t, got.Html, "Ada &lt;admin&gt;")
	assert.Contains(t, got.Html, "Hello<br>there")
}

func TestMailerAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	m := NewMailer("re_key", "bad", []string{"owner@example.com"})
	m.endpoint = srv.URL

	err := m.NotifyContact(context.Background(), testMessage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
	assert.Contains(t, err.Error(), "422")
}

type fakeCreator struct {
	params *openapi.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestTexterNotifyContact(t *testing.T) {
	creator := &fakeCreator{}
	texter := &Texter{api: creator, from: "+15550001", to: "+15550002"}

	long := testMessage
	long.Message = strings.Repeat("x", 1000)
	require.NoError(t, texter.NotifyContact(context.Background(), long))

	require.NotNil(t, creator.params)
	assert.Equal(t, "+15550002", *creator.params.To)
	assert.Equal(t, "+15550001", *creator.params.From)
	assert.Len(t, []rune(*creator.params.Body), smsLimit)
	assert.True(t, strings.HasPrefix(*creator.params.Body, "New message from Ada <admin> (ada@example.com): "))
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) NotifyContact(context.Context, models.Message) error {
	s.calls++
	return s.err
}

func TestNotifiersJoinErrors(t *testing.T) {
	first := &stubNotifier{err: errors.New("mail down")}
	second := &stubNotifier{}
	third := &stubNotifier{err: errors.New("sms down")}

	err := Notifiers{first, second, third}.NotifyContact(context.Background(), testMessage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail down")
	assert.Contains(t, err.Error(), "sms down")
	assert.Equal(t, 1, second.calls)

	assert.NoError(t, Notifiers{}.NotifyContact(context.Background(), testMessage))
}

func TestFromConfig(t *testing.T) {
	assert.Empty(t, FromConfig(Config{}))
	assert.Empty(t, FromConfig(Config{ResendAPIKey: "k", ResendFrom: "f"}))

	notifiers := FromConfig(Config{
		ResendAPIKey: "k", ResendFrom: "f", NotifyEmail: "o@example.com",
		TwilioAccountSID: "AC1", TwilioAuthToken: "t", TwilioFrom: "+1", NotifyPhone: "+2",
	})
	require.Len(t, notifiers, 2)
	assert.IsType(t, &Mailer{}, notifiers[0])
	assert.IsType(t, &Texter{}, notifiers[1])
}

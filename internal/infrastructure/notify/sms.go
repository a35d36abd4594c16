package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// TwilioConfig holds the SMS provider credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// messageCreator is the part of the Twilio API the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender delivers SMS messages through Twilio.
type SMSSender struct {
	api  messageCreator
	from string
}

var _ ports.MessageSender = (*SMSSender)(nil)

func NewSMSSender(cfg TwilioConfig) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMSSender{api: client.Api, from: cfg.From}
}

// Send does not observe ctx: the Twilio client has no context-aware call.
func (s *SMSSender) Send(_ context.Context, msg domain.Message) error {
	if msg.Channel != domain.ChannelSMS {
		return fmt.Errorf("sms sender cannot deliver %s messages", msg.Channel)
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return errors.New("sms recipient is required")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(msg.Body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}

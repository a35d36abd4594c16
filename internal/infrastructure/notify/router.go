package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// Router dispatches each message to the sender registered for its channel.
type Router struct {
	senders map[domain.Channel]ports.MessageSender
}

var _ ports.MessageSender = (*Router)(nil)

func NewRouter(senders map[domain.Channel]ports.MessageSender) *Router {
	return &Router{senders: senders}
}

func (r *Router) Send(ctx context.Context, msg domain.Message) error {
	s, ok := r.senders[msg.Channel]
	if !ok {
		return fmt.Errorf("no sender for channel %q", msg.Channel)
	}
	return s.Send(ctx, msg)
}

// Build assembles the production router: each configured provider is
// wrapped in a circuit breaker, and unconfigured channels are logged.
func Build(smtpCfg SMTPConfig, twilioCfg TwilioConfig, log zerolog.Logger) *Router {
	var email, sms ports.MessageSender = NewLogSender(log), NewLogSender(log)
	if smtpCfg.Configured() {
		email = NewBreakerSender("smtp", NewEmailSender(smtpCfg), BreakerConfig{}, log)
	}
	if twilioCfg.Configured() {
		sms = NewBreakerSender("twilio", NewSMSSender(twilioCfg), BreakerConfig{}, log)
	}
	return NewRouter(map[domain.Channel]ports.MessageSender{
		domain.ChannelEmail: email,
		domain.ChannelSMS:   sms,
	})
}

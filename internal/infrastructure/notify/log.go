package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// LogSender writes messages to the log instead of delivering them. It
// stands in for a channel whose provider is not configured.
type LogSender struct {
	log zerolog.Logger
}

var _ ports.MessageSender = LogSender{}

func NewLogSender(log zerolog.Logger) LogSender {
	return LogSender{log: log}
}

func (s LogSender) Send(_ context.Context, msg domain.Message) error {
	s.log.Info().
		Str("channel", string(msg.Channel)).
		Str("subject", msg.Subject).
		Int("body_len", len(msg.Body)).
		Msg("notification not delivered, channel not configured")
	return nil
}

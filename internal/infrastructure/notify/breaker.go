package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// BreakerConfig tunes the circuit breaker around a provider.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func defaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerSender stops calling a failing provider until it recovers. While
// open, Send fails fast with gobreaker.ErrOpenState.
type BreakerSender struct {
	next ports.MessageSender
	cb   *gobreaker.CircuitBreaker[struct{}]
}

var _ ports.MessageSender = (*BreakerSender)(nil)

// NewBreakerSender wraps next. A zero cfg uses defaults named after the
// channel.
func NewBreakerSender(name string, next ports.MessageSender, cfg BreakerConfig, log zerolog.Logger) *BreakerSender {
	if cfg.FailureThreshold == 0 {
		cfg = defaultBreakerConfig(name)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("notification breaker state changed")
		},
	}
	return &BreakerSender{next: next, cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

func (s *BreakerSender) Send(ctx context.Context, msg domain.Message) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Send(ctx, msg)
	})
	return err
}

// State reports the breaker state for health output.
func (s *BreakerSender) State() string {
	return s.cb.State().String()
}

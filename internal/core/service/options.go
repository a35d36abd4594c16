package service

import (
	"time"

	"github.com/google/uuid"
)

// runtime holds the clock and id source shared by all services.
type runtime struct {
	now   func() time.Time
	newID func() string
}

// Option customises a service's clock or id generation.
type Option func(*runtime)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *runtime) { r.now = now }
}

// WithIDGenerator overrides how record ids are assigned.
func WithIDGenerator(fn func() string) Option {
	return func(r *runtime) { r.newID = fn }
}

func newRuntime(opts []Option) runtime {
	rt := runtime{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&rt)
	}
	return rt
}

package ports

import (
	"context"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// Notifier is the notification sink. Notify is fire-and-forget: delivery
// failures are logged by the implementation and never returned.
type Notifier interface {
	Notify(ctx context.Context, msg domain.Message)
}

// MessageSender delivers a single message synchronously.
type MessageSender interface {
	Send(ctx context.Context, msg domain.Message) error
}

// ArtifactInput is everything printed on a pass artifact.
type ArtifactInput struct {
	Visitor    *domain.Visitor
	PassID     string
	QRCode     []byte // PNG
	ValidFrom  time.Time
	ValidUntil time.Time
}

// ArtifactRenderer renders a downloadable pass and returns its locator.
// A render failure aborts issuance. Discard removes the artifact of a pass
// that was never stored; a missing artifact is not an error.
type ArtifactRenderer interface {
	Render(ctx context.Context, in ArtifactInput) (string, error)
	Discard(ctx context.Context, passID string) error
}

// EncodedPass is a payload in its serialized and scannable forms.
type EncodedPass struct {
	Payload string // serialized payload
	QRCode  string // data URL of the PNG
	PNG     []byte
}

// PassEncoder serializes payloads into scannable codes and back.
type PassEncoder interface {
	Encode(payload domain.PassPayload) (*EncodedPass, error)
	// Decode parses a scanned payload. Malformed input is a validation error.
	Decode(raw string) (domain.PassPayload, error)
}

// Authorizer decides whether a principal may perform action on resource.
// It returns nil when allowed and a forbidden error otherwise.
type Authorizer interface {
	Authorize(p domain.Principal, resource, action string) error
}

// ScanGuard suppresses repeated log entries from a scanner re-reading the
// same code. Acquire returns false if passID and action were seen recently.
type ScanGuard interface {
	Acquire(ctx context.Context, passID, action string) (bool, error)
}

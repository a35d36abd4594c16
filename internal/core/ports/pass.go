package ports

import (
	"context"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// PassFilter carries the query parameters for listing passes.
type PassFilter struct {
	VisitorID string
	Status    domain.PassStatus
}

// PassRepository defines persistence operations for passes.
type PassRepository interface {
	// Create inserts a fully built pass in a single write.
	Create(ctx context.Context, p *domain.Pass) error
	FindByID(ctx context.Context, id string) (*domain.Pass, error)
	// List returns matching passes, newest first.
	List(ctx context.Context, filter PassFilter) ([]*domain.Pass, error)
	UpdateStatus(ctx context.Context, id string, status domain.PassStatus, at time.Time) error
	// MarkExpired flips the given passes to expired, skipping any that are no
	// longer issued. It returns the number of records changed.
	MarkExpired(ctx context.Context, ids []string, at time.Time) (int64, error)
	// ExpireIssuedBefore flips every issued pass whose window closed before
	// now to expired and returns the number of records changed.
	ExpireIssuedBefore(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// IssuePassInput carries the parameters for issuing a pass.
type IssuePassInput struct {
	VisitorID     string
	AppointmentID string // optional
	ExpiryHours   int    // 0 selects the default
}

// PassDetail is a pass with its references expanded.
type PassDetail struct {
	*domain.Pass
	Visitor     *domain.Visitor
	Appointment *domain.Appointment
}

// Verification is the outcome of a successful pass verification.
type Verification struct {
	Valid          bool
	Pass           *domain.Pass
	Visitor        *domain.Visitor
	RemainingHours int
}

// PassService defines use-case operations for the pass engine.
type PassService interface {
	Issue(ctx context.Context, p domain.Principal, in IssuePassInput) (*PassDetail, error)
	VerifyAndConsume(ctx context.Context, p domain.Principal, passID string) (*Verification, error)
	SetStatus(ctx context.Context, p domain.Principal, id string, status domain.PassStatus) (*domain.Pass, error)
	SweepExpired(ctx context.Context, p domain.Principal) (int64, error)
	List(ctx context.Context, p domain.Principal, filter PassFilter) ([]*PassDetail, error)
	Get(ctx context.Context, p domain.Principal, id string) (*PassDetail, error)
}

package ports

import (
	"context"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// CheckLogFilter carries the query parameters for listing check logs.
type CheckLogFilter struct {
	VisitorID string
	PassID    string
	Limit     int // 0 = no limit
}

// CheckLogRepository is append-only: there is no update or delete.
type CheckLogRepository interface {
	Append(ctx context.Context, l *domain.CheckLog) error
	// List returns matching entries, newest first.
	List(ctx context.Context, filter CheckLogFilter) ([]*domain.CheckLog, error)
	Count(ctx context.Context) (int64, error)
}

// RecordInput carries the fields of a checkpoint event.
type RecordInput struct {
	VisitorID string
	PassID    string // optional
	Action    domain.CheckAction
	Location  string // optional
}

// CheckLogDetail is a check log entry with its visitor expanded.
type CheckLogDetail struct {
	*domain.CheckLog
	Visitor *domain.Visitor
}

// CheckLogService records checkpoint events. It does not verify passes;
// callers must verify before recording.
type CheckLogService interface {
	Record(ctx context.Context, p domain.Principal, in RecordInput) (*CheckLogDetail, error)
	List(ctx context.Context, p domain.Principal, filter CheckLogFilter) ([]*CheckLogDetail, error)
}

// ScanInput is what a checkpoint scanner submits.
type ScanInput struct {
	Payload  string
	Action   domain.CheckAction // optional override
	Location string             // optional override
}

// ScanResult is the outcome of a checkpoint scan.
type ScanResult struct {
	Verification *Verification
	Log          *CheckLogDetail
	// Duplicate is true when the same pass and action were scanned within the
	// dedup window and no new log entry was written.
	Duplicate bool
}

// ScanService verifies a scanned payload and then records the event.
type ScanService interface {
	Scan(ctx context.Context, p domain.Principal, in ScanInput) (*ScanResult, error)
}

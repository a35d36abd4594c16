package ports

import (
	"context"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// Summary is the dashboard overview.
type Summary struct {
	Visitors     int64
	Appointments int64
	Passes       int64
	RecentLogs   []*CheckLogDetail
}

type ReportService interface {
	Summary(ctx context.Context, p domain.Principal) (*Summary, error)
}

package service

import (
	"context"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const recentLogLimit = 5

type ReportService struct {
	visitors     ports.VisitorRepository
	appointments ports.AppointmentRepository
	passes       ports.PassRepository
	logs         ports.CheckLogRepository
	authz        ports.Authorizer
}

func NewReportService(
	visitors ports.VisitorRepository,
	appointments ports.AppointmentRepository,
	passes ports.PassRepository,
	logs ports.CheckLogRepository,
	authz ports.Authorizer,
) *ReportService {
	return &ReportService{visitors: visitors, appointments: appointments, passes: passes, logs: logs, authz: authz}
}

// Summary returns record counts and the latest check log entries.
func (s *ReportService) Summary(ctx context.Context, p domain.Principal) (*ports.Summary, error) {
	if err := s.authz.Authorize(p, domain.ResourceReport, domain.ActionRead); err != nil {
		return nil, err
	}

	var (
		out ports.Summary
		err error
	)
	if out.Visitors, err = s.visitors.Count(ctx); err != nil {
		return nil, err
	}
	if out.Appointments, err = s.appointments.Count(ctx); err != nil {
		return nil, err
	}
	if out.Passes, err = s.passes.Count(ctx); err != nil {
		return nil, err
	}

	entries, err := s.logs.List(ctx, ports.CheckLogFilter{Limit: recentLogLimit})
	if err != nil {
		return nil, err
	}
	if out.RecentLogs, err = expandLogs(ctx, s.visitors, entries); err != nil {
		return nil, err
	}
	return &out, nil
}

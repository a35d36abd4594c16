package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// CheckLogService appends checkpoint events. It only checks that the
// referenced records exist; verifying the pass is the caller's job.
type CheckLogService struct {
	logs     ports.CheckLogRepository
	visitors ports.VisitorRepository
	passes   ports.PassRepository
	authz    ports.Authorizer
	log      zerolog.Logger
	rt       runtime
}

func NewCheckLogService(
	logs ports.CheckLogRepository,
	visitors ports.VisitorRepository,
	passes ports.PassRepository,
	authz ports.Authorizer,
	log zerolog.Logger,
	opts ...Option,
) *CheckLogService {
	return &CheckLogService{
		logs:     logs,
		visitors: visitors,
		passes:   passes,
		authz:    authz,
		log:      log,
		rt:       newRuntime(opts),
	}
}

func (s *CheckLogService) Record(ctx context.Context, p domain.Principal, in ports.RecordInput) (*ports.CheckLogDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceCheckLog, domain.ActionRecord); err != nil {
		return nil, err
	}
	if !in.Action.Valid() {
		return nil, domain.Validationf("action must be one of: checkin checkout")
	}

	visitor, err := s.visitors.FindByID(ctx, in.VisitorID)
	if err != nil {
		return nil, err
	}
	if in.PassID != "" {
		if _, err := s.passes.FindByID(ctx, in.PassID); err != nil {
			return nil, err
		}
	}

	entry := &domain.CheckLog{
		ID:         s.rt.newID(),
		VisitorID:  visitor.ID,
		PassID:     in.PassID,
		Action:     in.Action,
		Location:   strings.TrimSpace(in.Location),
		Timestamp:  s.rt.now(),
		RecordedBy: p.UserID,
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("visitor_id", visitor.ID).Msg("failed to append check log")
		return nil, err
	}

	s.log.Info().
		Str("visitor_id", visitor.ID).
		Str("pass_id", in.PassID).
		Str("action", string(in.Action)).
		Str("location", entry.Location).
		Msg("check log recorded")
	return &ports.CheckLogDetail{CheckLog: entry, Visitor: visitor}, nil
}

// List returns entries newest first.
func (s *CheckLogService) List(ctx context.Context, p domain.Principal, filter ports.CheckLogFilter) ([]*ports.CheckLogDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceCheckLog, domain.ActionRead); err != nil {
		return nil, err
	}
	if filter.Limit < 0 {
		return nil, domain.Validationf("limit must not be negative")
	}
	entries, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return expandLogs(ctx, s.visitors, entries)
}

func expandLogs(ctx context.Context, visitors ports.VisitorRepository, entries []*domain.CheckLog) ([]*ports.CheckLogDetail, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VisitorID)
	}
	byID, err := lookupVisitors(ctx, visitors, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*ports.CheckLogDetail, len(entries))
	for i, e := range entries {
		out[i] = &ports.CheckLogDetail{CheckLog: e, Visitor: byID[e.VisitorID]}
	}
	return out, nil
}

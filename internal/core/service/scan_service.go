package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// ScanService implements the checkpoint workflow: decode the scanned code,
// verify the pass it names, then record the event.
type ScanService struct {
	encoder ports.PassEncoder
	passes  ports.PassService
	logs    ports.CheckLogService
	guard   ports.ScanGuard
	authz   ports.Authorizer
	log     zerolog.Logger
}

// NewScanService returns a ScanService. guard may be nil, in which case
// every scan is recorded.
func NewScanService(
	encoder ports.PassEncoder,
	passes ports.PassService,
	logs ports.CheckLogService,
	guard ports.ScanGuard,
	authz ports.Authorizer,
	log zerolog.Logger,
) *ScanService {
	return &ScanService{encoder: encoder, passes: passes, logs: logs, guard: guard, authz: authz, log: log}
}

func (s *ScanService) Scan(ctx context.Context, p domain.Principal, in ports.ScanInput) (*ports.ScanResult, error) {
	if err := s.authz.Authorize(p, domain.ResourceCheckLog, domain.ActionScan); err != nil {
		return nil, err
	}

	// 1. Decode. The payload only locates the pass.
	payload, err := s.encoder.Decode(in.Payload)
	if err != nil {
		return nil, err
	}

	// 2. Verify against the stored record.
	verification, err := s.passes.VerifyAndConsume(ctx, p, payload.PassID)
	if err != nil {
		return nil, err
	}

	action := firstAction(in.Action, payload.Action)
	if !action.Valid() {
		return nil, domain.Validationf("action must be one of: checkin checkout")
	}
	location := firstNonEmpty(in.Location, payload.Location, domain.DefaultLocation)

	// 3. Suppress re-reads of the same code. Guard failures never block entry.
	if s.guard != nil {
		fresh, err := s.guard.Acquire(ctx, verification.Pass.ID, string(action))
		if err != nil {
			s.log.Warn().Err(err).Str("pass_id", verification.Pass.ID).Msg("scan guard unavailable, recording anyway")
		} else if !fresh {
			s.log.Debug().Str("pass_id", verification.Pass.ID).Str("action", string(action)).Msg("duplicate scan skipped")
			return &ports.ScanResult{Verification: verification, Duplicate: true}, nil
		}
	}

	// 4. Record using the visitor from the stored pass, never the payload.
	entry, err := s.logs.Record(ctx, p, ports.RecordInput{
		VisitorID: verification.Pass.VisitorID,
		PassID:    verification.Pass.ID,
		Action:    action,
		Location:  location,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ScanResult{Verification: verification, Log: entry}, nil
}

func firstAction(candidates ...domain.CheckAction) domain.CheckAction {
	for _, a := range candidates {
		if a != "" {
			return a
		}
	}
	return domain.DefaultAction
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

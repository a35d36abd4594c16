package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// PassDeps collects the collaborators of the pass engine.
type PassDeps struct {
	Passes       ports.PassRepository
	Visitors     ports.VisitorRepository
	Appointments ports.AppointmentRepository
	Encoder      ports.PassEncoder
	Renderer     ports.ArtifactRenderer
	Authorizer   ports.Authorizer
	Notifier     ports.Notifier
}

// PassPolicy bounds the validity windows callers may request.
type PassPolicy struct {
	DefaultExpiryHours int // used when the caller asks for 0
	MaxExpiryHours     int // 0 = unbounded
}

type PassService struct {
	deps   PassDeps
	policy PassPolicy
	log    zerolog.Logger
	rt     runtime
}

func NewPassService(deps PassDeps, policy PassPolicy, log zerolog.Logger, opts ...Option) *PassService {
	if policy.DefaultExpiryHours <= 0 {
		policy.DefaultExpiryHours = domain.DefaultExpiryHours
	}
	return &PassService{deps: deps, policy: policy, log: log, rt: newRuntime(opts)}
}

// Issue builds a complete pass, payload, code and artifact included, and
// persists it with a single write. Preconditions are checked in order and the
// first failure wins.
func (s *PassService) Issue(ctx context.Context, p domain.Principal, in ports.IssuePassInput) (*ports.PassDetail, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionIssue); err != nil {
		return nil, err
	}

	hours, err := s.expiryHours(in.ExpiryHours)
	if err != nil {
		return nil, err
	}

	visitor, err := s.deps.Visitors.FindByID(ctx, in.VisitorID)
	if err != nil {
		return nil, err
	}
	if visitor.Status != domain.VisitorApproved {
		return nil, domain.ErrVisitorNotApproved
	}

	var appointment *domain.Appointment
	if in.AppointmentID != "" {
		appointment, err = s.deps.Appointments.FindByID(ctx, in.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment.Status != domain.AppointmentApproved {
			return nil, domain.ErrAppointmentNotApproved
		}
	}

	now := s.rt.now()
	validFrom, validUntil := domain.ValidityWindow(now, hours)
	pass := &domain.Pass{
		ID:            s.rt.newID(),
		VisitorID:     visitor.ID,
		AppointmentID: in.AppointmentID,
		Status:        domain.PassIssued,
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
		ExpiryHours:   hours,
		IssuedBy:      p.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	encoded, err := s.deps.Encoder.Encode(domain.NewPassPayload(pass))
	if err != nil {
		return nil, fmt.Errorf("encode pass payload: %w", err)
	}
	pass.Payload = encoded.Payload
	pass.QRCode = encoded.QRCode

	locator, err := s.deps.Renderer.Render(ctx, ports.ArtifactInput{
		Visitor:    visitor,
		PassID:     pass.ID,
		QRCode:     encoded.PNG,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	})
	if err != nil {
		s.log.Error().Err(err).Str("pass_id", pass.ID).Msg("pass artifact rendering failed")
		return nil, fmt.Errorf("render pass artifact: %w", err)
	}
	pass.ArtifactURL = locator

	if err := s.deps.Passes.Create(ctx, pass); err != nil {
		s.log.Error().Err(err).Str("pass_id", pass.ID).Msg("failed to store pass")
		if derr := s.deps.Renderer.Discard(ctx, pass.ID); derr != nil {
			s.log.Warn().Err(derr).Str("pass_id", pass.ID).Msg("orphaned pass artifact not removed")
		}
		return nil, err
	}

	notify(ctx, s.deps.Notifier, passIssuedMessages(visitor, pass)...)
	s.log.Info().
		Str("pass_id", pass.ID).
		Str("visitor_id", visitor.ID).
		Int("expiry_hours", hours).
		Str("by", p.UserID).
		Msg("pass issued")

	return &ports.PassDetail{Pass: pass, Visitor: visitor, Appointment: appointment}, nil
}

func (s *PassService) expiryHours(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, domain.Validationf("expiry duration must be positive")
	case requested == 0:
		return s.policy.DefaultExpiryHours, nil
	case s.policy.MaxExpiryHours > 0 && requested > s.policy.MaxExpiryHours:
		return 0, domain.Validationf("expiry duration cannot exceed %d hours", s.policy.MaxExpiryHours)
	}
	return requested, nil
}

// VerifyAndConsume checks a pass at a checkpoint. Only the persisted record
// is consulted. A pass found past its window is flipped to expired first, so
// repeated calls keep returning the same outcome without writing again.
func (s *PassService) VerifyAndConsume(ctx context.Context, p domain.Principal, passID string) (*ports.Verification, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionVerify); err != nil {
		return nil, err
	}
	if passID == "" {
		return nil, domain.Validationf("pass id is required")
	}

	pass, err := s.deps.Passes.FindByID(ctx, passID)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	if err := s.applyExpiry(ctx, now, pass); err != nil {
		return nil, err
	}
	if err := pass.Admit(); err != nil {
		s.log.Info().Str("pass_id", passID).Str("status", string(pass.Status)).Msg("pass rejected at checkpoint")
		return nil, err
	}

	visitor, err := s.deps.Visitors.FindByID(ctx, pass.VisitorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return &ports.Verification{
		Valid:          true,
		Pass:           pass,
		Visitor:        visitor,
		RemainingHours: pass.RemainingHours(now),
	}, nil
}

// SetStatus applies a manual status change subject to the pass state machine.
func (s *PassService) SetStatus(ctx context.Context, p domain.Principal, id string, status domain.PassStatus) (*domain.Pass, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionUpdate); err != nil {
		return nil, err
	}

	pass, err := s.deps.Passes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	if err := s.applyExpiry(ctx, now, pass); err != nil {
		return nil, err
	}

	prev := pass.Status
	if err := pass.TransitionTo(status, now); err != nil {
		return nil, err
	}
	if err := s.deps.Passes.UpdateStatus(ctx, id, pass.Status, now); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("pass_id", id).
		Str("from", string(prev)).
		Str("to", string(pass.Status)).
		Str("by", p.UserID).
		Msg("pass status changed")
	return pass, nil
}

// SweepExpired expires every issued pass whose window has closed. It uses the
// same predicate as the lazy read path.
func (s *PassService) SweepExpired(ctx context.Context, p domain.Principal) (int64, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionSweep); err != nil {
		return 0, err
	}
	n, err := s.deps.Passes.ExpireIssuedBefore(ctx, s.rt.now())
	if err != nil {
		return 0, fmt.Errorf("sweep expired passes: %w", err)
	}
	s.log.Info().Int64("expired", n).Str("by", p.UserID).Msg("expired passes swept")
	return n, nil
}

// List returns passes newest first, expiring any whose window has closed.
func (s *PassService) List(ctx context.Context, p domain.Principal, filter ports.PassFilter) ([]*ports.PassDetail, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionRead); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("status must be one of: issued revoked expired")
	}

	passes, err := s.deps.Passes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.applyExpiry(ctx, s.rt.now(), passes...); err != nil {
		return nil, err
	}
	return s.expand(ctx, passes)
}

func (s *PassService) Get(ctx context.Context, p domain.Principal, id string) (*ports.PassDetail, error) {
	if err := s.deps.Authorizer.Authorize(p, domain.ResourcePass, domain.ActionRead); err != nil {
		return nil, err
	}
	pass, err := s.deps.Passes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyExpiry(ctx, s.rt.now(), pass); err != nil {
		return nil, err
	}
	out, err := s.expand(ctx, []*domain.Pass{pass})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// applyExpiry runs EvaluateExpiry over passes, updates them in place and
// persists every pass that flipped.
func (s *PassService) applyExpiry(ctx context.Context, now time.Time, passes ...*domain.Pass) error {
	var flipped []string
	for _, pass := range passes {
		status, changed := domain.EvaluateExpiry(pass, now)
		if !changed {
			continue
		}
		pass.Status = status
		pass.UpdatedAt = now
		flipped = append(flipped, pass.ID)
	}
	if len(flipped) == 0 {
		return nil
	}
	if _, err := s.deps.Passes.MarkExpired(ctx, flipped, now); err != nil {
		return fmt.Errorf("persist lazy expiry: %w", err)
	}
	s.log.Debug().Strs("pass_ids", flipped).Msg("passes expired on read")
	return nil
}

func (s *PassService) expand(ctx context.Context, passes []*domain.Pass) ([]*ports.PassDetail, error) {
	visitorIDs := make([]string, 0, len(passes))
	appointmentIDs := make([]string, 0, len(passes))
	for _, p := range passes {
		visitorIDs = append(visitorIDs, p.VisitorID)
		appointmentIDs = append(appointmentIDs, p.AppointmentID)
	}

	visitors, err := lookupVisitors(ctx, s.deps.Visitors, visitorIDs)
	if err != nil {
		return nil, err
	}
	appointments := map[string]*domain.Appointment{}
	if ids := uniqueIDs(appointmentIDs...); len(ids) > 0 {
		appointments, err = s.deps.Appointments.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("expand appointments: %w", err)
		}
	}

	out := make([]*ports.PassDetail, len(passes))
	for i, p := range passes {
		out[i] = &ports.PassDetail{
			Pass:        p,
			Visitor:     visitors[p.VisitorID],
			Appointment: appointments[p.AppointmentID],
		}
	}
	return out, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const preRegisteredNote = "Pre-registered by visitor"

type VisitorService struct {
	visitors     ports.VisitorRepository
	appointments ports.AppointmentRepository
	authz        ports.Authorizer
	notifier     ports.Notifier
	log          zerolog.Logger
	rt           runtime
}

func NewVisitorService(
	visitors ports.VisitorRepository,
	appointments ports.AppointmentRepository,
	authz ports.Authorizer,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...Option,
) *VisitorService {
	return &VisitorService{
		visitors:     visitors,
		appointments: appointments,
		authz:        authz,
		notifier:     notifier,
		log:          log,
		rt:           newRuntime(opts),
	}
}

// Create registers a visitor on behalf of staff.
func (s *VisitorService) Create(ctx context.Context, p domain.Principal, in ports.CreateVisitorInput) (*domain.Visitor, error) {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, domain.Validationf("full name is required")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}
	status := in.Status
	if status == "" {
		status = domain.VisitorPending
	}
	if !status.Valid() {
		return nil, domain.Validationf("status must be one of: pending approved denied")
	}
	// Starting anywhere but pending is an approval decision.
	if status != domain.VisitorPending {
		if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionApprove); err != nil {
			return nil, err
		}
	}

	now := s.rt.now()
	v := &domain.Visitor{
		ID:        s.rt.newID(),
		FullName:  name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     phone,
		PhotoURL:  in.PhotoURL,
		Host:      in.Host,
		Purpose:   in.Purpose,
		Status:    status,
		CreatedBy: p.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.visitors.Create(ctx, v); err != nil {
		s.log.Error().Err(err).Msg("failed to create visitor")
		return nil, err
	}

	s.log.Info().Str("visitor_id", v.ID).Str("created_by", p.UserID).Msg("visitor registered")
	if status != domain.VisitorPending {
		s.log.Info().
			Str("visitor_id", v.ID).
			Str("from", string(domain.VisitorPending)).
			Str("to", string(status)).
			Str("by", p.UserID).
			Msg("visitor status changed")
	}
	return v, nil
}

// PreRegister lets a prospective visitor submit their own details. The
// visitor always starts pending; a requested date creates a scheduled
// appointment alongside it.
func (s *VisitorService) PreRegister(ctx context.Context, in ports.PreRegisterInput) (*ports.PreRegistration, error) {
	required := map[string]string{
		"full name": in.FullName,
		"email":     in.Email,
		"phone":     in.Phone,
		"host":      in.Host,
		"purpose":   in.Purpose,
	}
	for _, field := range []string{"full name", "email", "phone", "host", "purpose"} {
		if strings.TrimSpace(required[field]) == "" {
			return nil, domain.Validationf("%s is required", field)
		}
	}
	if !domain.ValidPhone(strings.TrimSpace(in.Phone)) {
		return nil, domain.ErrInvalidPhone
	}

	var visitAt time.Time
	if in.AppointmentDate != "" {
		at, err := domain.ParseVisitTime(in.AppointmentDate)
		if err != nil {
			return nil, err
		}
		visitAt = at
	}

	now := s.rt.now()
	v := &domain.Visitor{
		ID:        s.rt.newID(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Host:      strings.TrimSpace(in.Host),
		Purpose:   strings.TrimSpace(in.Purpose),
		Status:    domain.VisitorPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.visitors.Create(ctx, v); err != nil {
		s.log.Error().Err(err).Msg("failed to store pre-registration")
		return nil, err
	}

	result := &ports.PreRegistration{Visitor: v}
	if !visitAt.IsZero() {
		a := &domain.Appointment{
			ID:             s.rt.newID(),
			VisitorID:      v.ID,
			HostName:       v.Host,
			HostEmail:      in.HostEmail,
			HostDepartment: in.HostDepartment,
			ScheduledAt:    visitAt,
			Status:         domain.AppointmentScheduled,
			Notes:          preRegisteredNote,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.appointments.Create(ctx, a); err != nil {
			s.log.Error().Err(err).Str("visitor_id", v.ID).Msg("failed to store pre-registered appointment")
			return nil, err
		}
		result.Appointment = a
	}

	notify(ctx, s.notifier, preRegisteredMessage(v))
	s.log.Info().Str("visitor_id", v.ID).Bool("with_appointment", result.Appointment != nil).Msg("visitor pre-registered")
	return result, nil
}

func (s *VisitorService) List(ctx context.Context, p domain.Principal, filter ports.VisitorFilter) ([]*domain.Visitor, error) {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionRead); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("status must be one of: pending approved denied")
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.visitors.List(ctx, filter)
}

func (s *VisitorService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Visitor, error) {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionRead); err != nil {
		return nil, err
	}
	return s.visitors.FindByID(ctx, id)
}

// Update applies a partial edit. Visitors are never locked; any permitted
// role may edit at any status.
func (s *VisitorService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateVisitorInput) (*domain.Visitor, error) {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionUpdate); err != nil {
		return nil, err
	}

	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.Validationf("full name cannot be empty")
		}
		v.FullName = name
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&v.Email, in.Email)
	assign(&v.Phone, in.Phone)
	if v.Phone != "" && !domain.ValidPhone(v.Phone) {
		return nil, domain.ErrInvalidPhone
	}
	assign(&v.PhotoURL, in.PhotoURL)
	assign(&v.Host, in.Host)
	assign(&v.Purpose, in.Purpose)
	v.UpdatedAt = s.rt.now()

	if err := s.visitors.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetStatus records an approval decision on a visitor.
func (s *VisitorService) SetStatus(ctx context.Context, p domain.Principal, id string, status domain.VisitorStatus) (*domain.Visitor, error) {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionApprove); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validationf("status must be one of: pending approved denied")
	}

	v, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := v.Status
	v.Status = status
	v.UpdatedAt = s.rt.now()
	if err := s.visitors.Update(ctx, v); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("visitor_id", id).
		Str("from", string(prev)).
		Str("to", string(status)).
		Str("by", p.UserID).
		Msg("visitor status changed")
	return v, nil
}

func (s *VisitorService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := s.authz.Authorize(p, domain.ResourceVisitor, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.visitors.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("visitor_id", id).Str("by", p.UserID).Msg("visitor deleted")
	return nil
}

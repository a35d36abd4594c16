package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

type AppointmentService struct {
	appointments ports.AppointmentRepository
	visitors     ports.VisitorRepository
	users        ports.UserRepository
	authz        ports.Authorizer
	notifier     ports.Notifier
	log          zerolog.Logger
	rt           runtime
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	visitors ports.VisitorRepository,
	users ports.UserRepository,
	authz ports.Authorizer,
	notifier ports.Notifier,
	log zerolog.Logger,
	opts ...Option,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		visitors:     visitors,
		users:        users,
		authz:        authz,
		notifier:     notifier,
		log:          log,
		rt:           newRuntime(opts),
	}
}

// Schedule creates an appointment for an existing visitor. The appointment
// always starts scheduled. Notifications are best-effort.
func (s *AppointmentService) Schedule(ctx context.Context, p domain.Principal, in ports.ScheduleInput) (*ports.AppointmentDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceAppointment, domain.ActionCreate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.HostName) == "" {
		return nil, domain.Validationf("host name is required")
	}
	if in.ScheduledAt.IsZero() {
		return nil, domain.Validationf("scheduled time is required")
	}

	visitor, err := s.visitors.FindByID(ctx, in.VisitorID)
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	a := &domain.Appointment{
		ID:             s.rt.newID(),
		VisitorID:      visitor.ID,
		HostName:       strings.TrimSpace(in.HostName),
		HostEmail:      strings.TrimSpace(in.HostEmail),
		HostDepartment: in.HostDepartment,
		ScheduledAt:    in.ScheduledAt.UTC(),
		Status:         domain.AppointmentScheduled,
		Notes:          in.Notes,
		CreatedBy:      p.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	notify(ctx, s.notifier, scheduledMessages(visitor, a)...)
	s.log.Info().Str("appointment_id", a.ID).Str("visitor_id", visitor.ID).Msg("appointment scheduled")

	return s.detail(ctx, a, visitor)
}

// SetStatus runs the approval state machine. Any settable status is accepted
// from any state; moving an appointment out of a terminal state is allowed
// but logged.
func (s *AppointmentService) SetStatus(ctx context.Context, p domain.Principal, id string, in ports.SetAppointmentStatusInput) (*ports.AppointmentDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceAppointment, domain.ActionUpdate); err != nil {
		return nil, err
	}

	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := a.Status
	change := domain.AppointmentChange{
		Status:         in.Status,
		Notes:          in.Notes,
		DeclinedReason: in.DeclinedReason,
		Actor:          p.UserID,
	}
	if err := a.Apply(change, s.rt.now()); err != nil {
		return nil, err
	}
	if prev.IsTerminal() {
		s.log.Warn().
			Str("appointment_id", id).
			Str("from", string(prev)).
			Str("to", string(in.Status)).
			Msg("re-transitioning terminal appointment")
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	visitor, err := s.visitors.FindByID(ctx, a.VisitorID)
	switch {
	case err == nil:
		notify(ctx, s.notifier, statusMessages(visitor, a)...)
	case errors.Is(err, domain.ErrNotFound):
		s.log.Warn().Str("appointment_id", id).Str("visitor_id", a.VisitorID).Msg("appointment visitor missing, skipping notification")
		visitor = nil
	default:
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("from", string(prev)).
		Str("to", string(a.Status)).
		Str("by", p.UserID).
		Msg("appointment status changed")

	return s.detail(ctx, a, visitor)
}

func (s *AppointmentService) Get(ctx context.Context, p domain.Principal, id string) (*ports.AppointmentDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceAppointment, domain.ActionRead); err != nil {
		return nil, err
	}
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.expand(ctx, []*domain.Appointment{a})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// List returns appointments latest-scheduled first.
func (s *AppointmentService) List(ctx context.Context, p domain.Principal, filter ports.AppointmentFilter) ([]*ports.AppointmentDetail, error) {
	if err := s.authz.Authorize(p, domain.ResourceAppointment, domain.ActionRead); err != nil {
		return nil, err
	}
	items, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, items)
}

func (s *AppointmentService) detail(ctx context.Context, a *domain.Appointment, v *domain.Visitor) (*ports.AppointmentDetail, error) {
	users, err := lookupUsers(ctx, s.users, []string{a.CreatedBy, a.ApprovedBy})
	if err != nil {
		return nil, err
	}
	return &ports.AppointmentDetail{
		Appointment: a,
		Visitor:     v,
		Creator:     users[a.CreatedBy],
		Approver:    users[a.ApprovedBy],
	}, nil
}

func (s *AppointmentService) expand(ctx context.Context, items []*domain.Appointment) ([]*ports.AppointmentDetail, error) {
	visitorIDs := make([]string, 0, len(items))
	userIDs := make([]string, 0, 2*len(items))
	for _, a := range items {
		visitorIDs = append(visitorIDs, a.VisitorID)
		userIDs = append(userIDs, a.CreatedBy, a.ApprovedBy)
	}

	visitors, err := lookupVisitors(ctx, s.visitors, visitorIDs)
	if err != nil {
		return nil, err
	}
	users, err := lookupUsers(ctx, s.users, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*ports.AppointmentDetail, len(items))
	for i, a := range items {
		out[i] = &ports.AppointmentDetail{
			Appointment: a,
			Visitor:     visitors[a.VisitorID],
			Creator:     users[a.CreatedBy],
			Approver:    users[a.ApprovedBy],
		}
	}
	return out, nil
}

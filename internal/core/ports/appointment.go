package ports

import (
	"context"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// AppointmentFilter carries the query parameters for listing appointments.
type AppointmentFilter struct {
	VisitorID string
	Status    domain.AppointmentStatus
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Appointment, error)
	// List returns matching appointments sorted by scheduled time, latest first.
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Count(ctx context.Context) (int64, error)
}

// ScheduleInput carries the fields needed to schedule an appointment.
type ScheduleInput struct {
	VisitorID      string
	HostName       string
	HostEmail      string
	HostDepartment string
	ScheduledAt    time.Time
	Notes          string
}

// SetAppointmentStatusInput requests an appointment status change.
type SetAppointmentStatusInput struct {
	Status         domain.AppointmentStatus
	Notes          *string
	DeclinedReason *string
}

// AppointmentDetail is an appointment with its references expanded.
type AppointmentDetail struct {
	*domain.Appointment
	Visitor  *domain.Visitor
	Creator  *domain.UserRef
	Approver *domain.UserRef
}

// AppointmentService defines use-case operations for the scheduler.
type AppointmentService interface {
	Schedule(ctx context.Context, p domain.Principal, in ScheduleInput) (*AppointmentDetail, error)
	SetStatus(ctx context.Context, p domain.Principal, id string, in SetAppointmentStatusInput) (*AppointmentDetail, error)
	Get(ctx context.Context, p domain.Principal, id string) (*AppointmentDetail, error)
	List(ctx context.Context, p domain.Principal, filter AppointmentFilter) ([]*AppointmentDetail, error)
}

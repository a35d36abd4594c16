package ports

import (
	"context"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// VisitorFilter carries the query parameters for listing visitors.
type VisitorFilter struct {
	Search string               // optional: case-insensitive match on name, email or phone
	Status domain.VisitorStatus // optional
}

// VisitorRepository defines persistence operations for visitors.
type VisitorRepository interface {
	Create(ctx context.Context, v *domain.Visitor) error
	FindByID(ctx context.Context, id string) (*domain.Visitor, error)
	// FindByIDs returns the visitors that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Visitor, error)
	// List returns matching visitors, newest first.
	List(ctx context.Context, filter VisitorFilter) ([]*domain.Visitor, error)
	Update(ctx context.Context, v *domain.Visitor) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// CreateVisitorInput carries the fields staff provide when registering a visitor.
type CreateVisitorInput struct {
	FullName string
	Email    string
	Phone    string
	PhotoURL string
	Host     string
	Purpose  string
	Status   domain.VisitorStatus // optional, defaults to pending
}

// UpdateVisitorInput is a partial update; nil fields are left untouched.
type UpdateVisitorInput struct {
	FullName *string
	Email    *string
	Phone    *string
	PhotoURL *string
	Host     *string
	Purpose  *string
}

// PreRegisterInput is submitted by visitors themselves, without credentials.
type PreRegisterInput struct {
	FullName        string
	Email           string
	Phone           string
	Host            string
	Purpose         string
	AppointmentDate string // optional, RFC3339 or YYYY-MM-DDTHH:MM
	HostEmail       string
	HostDepartment  string
}

// PreRegistration is the result of a public pre-registration.
type PreRegistration struct {
	Visitor     *domain.Visitor
	Appointment *domain.Appointment // nil when no date was supplied
}

// VisitorService defines use-case operations for the visitor registry.
type VisitorService interface {
	Create(ctx context.Context, p domain.Principal, in CreateVisitorInput) (*domain.Visitor, error)
	PreRegister(ctx context.Context, in PreRegisterInput) (*PreRegistration, error)
	List(ctx context.Context, p domain.Principal, filter VisitorFilter) ([]*domain.Visitor, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Visitor, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateVisitorInput) (*domain.Visitor, error)
	SetStatus(ctx context.Context, p domain.Principal, id string, status domain.VisitorStatus) (*domain.Visitor, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}

package ports

import (
	"context"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// RegisterInput carries self-service registration details.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to employee
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, p domain.Principal) (*domain.User, error)
}

// CreateUserInput is used by admins and may assign any role.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Create(ctx context.Context, p domain.Principal, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}

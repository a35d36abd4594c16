package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// UserService is the admin-only account management surface.
type UserService struct {
	repo  ports.UserRepository
	authz ports.Authorizer
	log   zerolog.Logger
	rt    runtime
}

func NewUserService(repo ports.UserRepository, authz ports.Authorizer, log zerolog.Logger, opts ...Option) *UserService {
	return &UserService{repo: repo, authz: authz, log: log, rt: newRuntime(opts)}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := s.authz.Authorize(p, domain.ResourceUser, domain.ActionManage); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Create adds an account with any role.
func (s *UserService) Create(ctx context.Context, p domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if err := s.authz.Authorize(p, domain.ResourceUser, domain.ActionManage); err != nil {
		return nil, err
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.Validationf("role must be one of: admin security employee")
	}

	user, err := createUser(ctx, s.repo, s.rt, in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("by", p.UserID).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.authz.Authorize(p, domain.ResourceUser, domain.ActionManage); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validationf("name cannot be empty")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.Validationf("email cannot be empty")
		}
		if email != user.Email {
			if _, err := s.repo.FindByEmail(ctx, email); err == nil {
				return nil, domain.ErrUserExists
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.Validationf("role must be one of: admin security employee")
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, domain.Validationf("password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = s.rt.now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("by", p.UserID).Msg("user updated")
	return user, nil
}

// Delete removes an account. Admins cannot remove their own.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := s.authz.Authorize(p, domain.ResourceUser, domain.ActionManage); err != nil {
		return err
	}
	if id == p.UserID {
		return domain.Validationf("you cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("by", p.UserID).Msg("user deleted")
	return nil
}

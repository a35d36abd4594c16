package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration, login and token issuance.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	rt        runtime
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, opts ...Option) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, rt: newRuntime(opts)}
}

// Register creates a self-service account. Privileged roles can only be
// granted by an admin.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, domain.Validationf("role must be one of: admin security employee")
	}
	if domain.PrivilegedRole(role) {
		return nil, domain.Forbiddenf("the %s role can only be assigned by an admin", role)
	}

	return createUser(ctx, s.repo, s.rt, in.Name, in.Email, in.Password, role)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Profile returns the account behind an authenticated principal.
func (s *AuthService) Profile(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if !p.Authenticated() || p.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, p.UserID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.rt.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// createUser validates and stores a new account with any already-checked role.
func createUser(ctx context.Context, repo ports.UserRepository, rt runtime, name, email, password, role string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	switch {
	case name == "":
		return nil, domain.Validationf("name is required")
	case email == "":
		return nil, domain.Validationf("email is required")
	case len(password) < minPasswordLength:
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := rt.now()
	user := &domain.User{
		ID:           rt.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

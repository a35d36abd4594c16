package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleSecurity = "security"
	RoleEmployee = "employee"
)

// ValidRole reports whether role can be assigned to a user.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSecurity, RoleEmployee:
		return true
	}
	return false
}

// PrivilegedRole reports whether role is reserved for admin-created accounts.
func PrivilegedRole(role string) bool {
	return role == RoleAdmin || role == RoleSecurity
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the identity core operations authorize against.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// UserRef is the compact form used when expanding references to users.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

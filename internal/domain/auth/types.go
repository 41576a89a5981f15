package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/storage concerns.

import (
	"errors"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

// Role represents an application's authorization role.
// The string form matches the backend's user.role values.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "NORMAL_ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// roleRank orders roles: User < Admin < SuperAdmin.
var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// ParseRole normalizes a role string, accepting the backend names and the
// short aliases "user", "admin" and "super-admin"/"superAdmin".
func ParseRole(value string) (Role, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	switch v {
	case "USER", "BASE_USER":
		return RoleUser, true
	case "NORMAL_ADMIN", "ADMIN":
		return RoleAdmin, true
	case "SUPER_ADMIN", "SUPERADMIN":
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether a principal holding r meets the required role.
// Unknown roles never satisfy anything and an unknown requirement is never met.
func (r Role) Satisfies(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// Principal is the authenticated user as reported by the auth service.
type Principal struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	FullName   string          `json:"full_name,omitempty"`
	EmployeeID string          `json:"employee_id,omitempty"`
	Gender     string          `json:"gender,omitempty"`
	Age        *int            `json:"age,omitempty"`
	Role       Role            `json:"role"`
	CreatedAt  model.Timestamp `json:"created_at"`
}

// DisplayName prefers the full name and falls back to the username.
func (p Principal) DisplayName() string {
	if n := strings.TrimSpace(p.FullName); n != "" {
		return n
	}
	return p.Username
}

// Credentials are the username/password pair submitted to the auth service.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResult is the auth service's answer to a successful login.
type LoginResult struct {
	Token string    `json:"token"`
	User  Principal `json:"user"`
}

// Status tags the lifecycle of a client session.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusReady         Status = "ready"
	StatusInvalid       Status = "invalid"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Status    Status
	HasToken  bool
	Validated bool
	Principal *Principal
}

// Authenticated reports whether the snapshot holds a validated credential.
func (s Snapshot) Authenticated() bool {
	return s.HasToken && s.Validated && s.Status == StatusReady
}

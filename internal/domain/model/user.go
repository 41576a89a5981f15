package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen   = 3
	maxUsernameLen   = 80
	minPasswordLen   = 6
	maxFullNameLen   = 100
	maxEmployeeIDLen = 50
	maxGenderLen     = 10
	minAge           = 18
	maxAge           = 100
)

// Assignable roles for managed accounts.
const (
	RoleNameAdmin      = "NORMAL_ADMIN"
	RoleNameSuperAdmin = "SUPER_ADMIN"
)

// CreateUserRequest represents parameters to create an admin account.
type CreateUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FullName   string `json:"full_name,omitempty"`
	EmployeeID string `json:"employee_id"`
	Gender     string `json:"gender,omitempty"`
	Age        *int   `json:"age,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Validate validates CreateUserRequest. An empty role defaults to NORMAL_ADMIN.
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if n := utf8.RuneCountInString(r.Username); n < minUsernameLen || n > maxUsernameLen {
		return errors.New("username must be between 3 and 80 characters")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if r.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	if utf8.RuneCountInString(r.EmployeeID) > maxEmployeeIDLen {
		return errors.New("employee_id cannot exceed 50 characters")
	}
	if r.Role == "" {
		r.Role = RoleNameAdmin
	}
	return validateProfile(&r.FullName, &r.Gender, r.Age, &r.Role)
}

// UpdateUserRequest is the super-admin edit of another account.
type UpdateUserRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Age        *int    `json:"age,omitempty"`
	Role       *string `json:"role,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.FullName != nil || r.EmployeeID != nil || r.Gender != nil || r.Age != nil ||
		r.Role != nil || r.Password != nil
}

// Validate validates UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.EmployeeID != nil {
		id := strings.TrimSpace(*r.EmployeeID)
		if id == "" {
			return errors.New("employee_id cannot be empty")
		}
		if utf8.RuneCountInString(id) > maxEmployeeIDLen {
			return errors.New("employee_id cannot exceed 50 characters")
		}
		*r.EmployeeID = id
	}
	if r.Password != nil && utf8.RuneCountInString(*r.Password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	return validateProfile(r.FullName, r.Gender, r.Age, r.Role)
}

// UpdateProfileRequest is the signed-in user's edit of their own profile.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Age      *int    `json:"age,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateProfileRequest.
func (r *UpdateProfileRequest) HasUpdates() bool {
	return r.FullName != nil || r.Gender != nil || r.Age != nil
}

// Validate validates UpdateProfileRequest.
func (r *UpdateProfileRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	return validateProfile(r.FullName, r.Gender, r.Age, nil)
}

func validateProfile(fullName, gender *string, age *int, role *string) error {
	if fullName != nil {
		*fullName = strings.TrimSpace(*fullName)
		if utf8.RuneCountInString(*fullName) > maxFullNameLen {
			return errors.New("full_name cannot exceed 100 characters")
		}
	}
	if gender != nil {
		*gender = strings.TrimSpace(*gender)
		if utf8.RuneCountInString(*gender) > maxGenderLen {
			return errors.New("gender cannot exceed 10 characters")
		}
	}
	if age != nil && (*age < minAge || *age > maxAge) {
		return errors.New("age must be between 18 and 100")
	}
	if role != nil {
		r := strings.ToUpper(strings.TrimSpace(*role))
		if r != RoleNameAdmin && r != RoleNameSuperAdmin {
			return errors.New("role must be NORMAL_ADMIN or SUPER_ADMIN")
		}
		*role = r
	}
	return nil
}

package auth

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole maps a claim value to a Role; anything unrecognised is an employee.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleEmployee
}

// Caller is the authenticated identity passed explicitly into every service call.
type Caller struct {
	EmployeeID string
	Name       string
	Role       Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// RequireAdmin returns ErrAdminAccessRequired unless c is an admin.
func (c Caller) RequireAdmin() error {
	if !c.IsAdmin() {
		return ErrAdminAccessRequired
	}
	return nil
}

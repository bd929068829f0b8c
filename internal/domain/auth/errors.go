package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrMissingIdentity     = errors.New("token does not identify an employee")
	ErrAdminAccessRequired = errors.New("admin access required")
)

package report

import "errors"

var (
	ErrInvalidMonth          = errors.New("month must be in YYYY-MM format")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
	ErrWindowLengthMismatch  = errors.New("comparison windows must have the same length")
	ErrEmployeeNotIdentified = errors.New("report requires an employee")
)

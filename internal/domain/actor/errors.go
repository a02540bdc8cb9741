package actor

import "errors"

var (
	ErrInvalidRole             = errors.New("invalid actor role")
	ErrActorIDRequired         = errors.New("actor ID is required")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

package scope

import "errors"

var (
	ErrScopeViolation = errors.New("requested employee is outside the caller's scope")
	ErrNilScope       = errors.New("scope set is required")
)

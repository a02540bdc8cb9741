package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidEmployeeID = errors.New("invalid employee ID")
)

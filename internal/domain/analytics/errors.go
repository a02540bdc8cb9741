package analytics

import "errors"

var (
	ErrUnknownView   = errors.New("unknown analytics view")
	ErrForbiddenView = errors.New("view not available for this role")
	ErrUpstreamQuery = errors.New("record store query failed")
)

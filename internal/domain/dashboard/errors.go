package dashboard

import "errors"

var (
	ErrNoStrategy         = errors.New("no dashboard strategy registered for role")
	ErrAnalyticsForbidden = errors.New("analytics are not available for employees")
)

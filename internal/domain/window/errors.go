package window

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidRange  = errors.New("window start must not be after end")
)

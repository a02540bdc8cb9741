package clock

import "time"

// Clock supplies the single "now" a request is evaluated against.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// New returns the wall clock in loc. A nil loc means UTC.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock time.Time

// Fixed always returns t. Used in tests.
func Fixed(t time.Time) Clock {
	return fixedClock(t)
}

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

package attendance

import "time"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
)

// Attendance is one employee's record for one calendar day.
type Attendance struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Date          time.Time
	Status        Status
	WorkHours     float64
	OvertimeHours float64
}

// CountsAsPresent reports whether the status contributes to effective presence.
// Late and half-day arrivals are present for rate math.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// AnnualAllowance is the number of leave days granted per calendar year.
const AnnualAllowance = 12

type Leave struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Days       float64
	Status     Status
	CreatedAt  time.Time
}

// Remaining returns the unused allowance after approved days, floored at zero.
func Remaining(approvedDays float64) float64 {
	left := AnnualAllowance - approvedDays
	if left < 0 {
		return 0
	}
	return left
}

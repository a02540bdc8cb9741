package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Role          string
	AddedBy       *string // Actor who onboarded this record, nil for root HR
	ManagerID     *string // Line manager, if any
	DepartmentID  *string
	DesignationID *string
	IsActive      bool
	DateOfJoining time.Time
	Salary        decimal.Decimal
}

// Relations holds the ownership and management edges of one employee.
type Relations struct {
	EmployeeID string
	AddedBy    *string
	ManagerID  *string
}

// RelationsOf extracts the edges used by visibility scoping.
func (e *Employee) RelationsOf() Relations {
	return Relations{
		EmployeeID: e.ID,
		AddedBy:    e.AddedBy,
		ManagerID:  e.ManagerID,
	}
}

// ReportsTo reports whether leaderID added or manages this employee.
func (e *Employee) ReportsTo(leaderID string) bool {
	if e.ManagerID != nil && *e.ManagerID == leaderID {
		return true
	}
	return e.AddedBy != nil && *e.AddedBy == leaderID
}

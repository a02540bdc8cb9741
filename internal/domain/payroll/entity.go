package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusProcessed Status = "Processed"
	StatusPaid      Status = "Paid"
)

type Payroll struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Month      int // 1-12
	Year       int
	NetSalary  decimal.Decimal
	Status     Status
	CreatedAt  time.Time
}

// PeriodStart is the first instant of the payroll month in loc.
func (p *Payroll) PeriodStart(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
}

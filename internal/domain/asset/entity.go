package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusAssigned    Status = "Assigned"
	StatusMaintenance Status = "Under Maintenance"
	StatusRetired     Status = "Retired"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestRejected  RequestStatus = "Rejected"
	RequestFulfilled RequestStatus = "Fulfilled"
)

type Asset struct {
	ID         string
	CompanyID  string
	Name       string
	Category   string
	Status     Status
	AddedBy    *string
	AssignedTo *string
	Price      decimal.Decimal
}

type Request struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Status     RequestStatus
	CreatedAt  time.Time
}

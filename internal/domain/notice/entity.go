package notice

import "time"

type Notice struct {
	ID        string
	CompanyID string
	Title     string
	CreatedBy string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// ActiveAt reports whether the notice has not expired at t.
func (n *Notice) ActiveAt(t time.Time) bool {
	return n.ExpiresAt == nil || n.ExpiresAt.After(t)
}

type Announcement struct {
	ID        string
	CompanyID string
	Title     string
	Category  string
	CreatedBy string
	IsActive  bool
	CreatedAt time.Time
}

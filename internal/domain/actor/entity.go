package actor

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"       // Organization admin - sees the whole company
	RoleHRManager  Role = "hr_manager"  // Sees the employees they onboarded
	RoleTeamLeader Role = "team_leader" // Sees direct reports and onboarded members
	RoleEmployee   Role = "employee"    // Sees only themself
)

// Actor is the authenticated caller as supplied by the session layer.
type Actor struct {
	ID        string
	CompanyID string
	Role      Role
}

// ParseRole normalizes a role claim. Legacy spellings from the HR frontend
// ("HR", "TeamLeader", "Employee") are accepted.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "owner":
		return RoleAdmin, nil
	case "hr_manager", "hr", "hrmanager":
		return RoleHRManager, nil
	case "team_leader", "teamleader", "tl":
		return RoleTeamLeader, nil
	case "employee":
		return RoleEmployee, nil
	}
	return "", ErrInvalidRole
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHRManager, RoleTeamLeader, RoleEmployee:
		return true
	}
	return false
}

func (a Actor) Validate() error {
	if !a.Role.Valid() {
		return ErrInvalidRole
	}
	if a.ID == "" {
		return ErrActorIDRequired
	}
	if a.CompanyID == "" {
		return ErrCompanyIDRequired
	}
	return nil
}

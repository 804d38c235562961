package service

import "github.com/campusgig/campusgig-api/internal/models"

// Identity is the re-resolved view of the authenticated account attached
// to each request. It is rebuilt from the store on every request so stale
// token claims can never grant stale privileges.
type Identity struct {
	AccountID uint
	Role      string
	Campus    string
	Mode      string
}

// IsAdmin reports whether the identity holds the platform admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CampusScope returns the campus partition every query and mutation for
// this identity must be restricted to. Admin identities are unrestricted
// and get the empty scope.
func (i Identity) CampusScope() string {
	if i.IsAdmin() {
		return ""
	}
	return i.Campus
}

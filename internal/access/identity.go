package access

import "github.com/noah-isme/daycare-api/internal/models"

// Identity is the authenticated caller evaluated by policies.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// Anonymous is the identity of a caller without a valid token.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated reports whether the identity belongs to a resolved user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// HasRole reports whether the identity holds one of the roles.
func HasRole(id Identity, roles ...models.UserRole) bool {
	if !id.Authenticated() {
		return false
	}
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}

// IsStaff reports whether the identity is an admin or staff member.
func IsStaff(id Identity) bool {
	return id.Authenticated() && id.Role.IsStaff()
}

// IsOwnerOrStaff reports whether the identity owns the resource or is staff.
func IsOwnerOrStaff(id Identity, ownerID string) bool {
	if !id.Authenticated() {
		return false
	}
	return IsStaff(id) || (ownerID != "" && id.UserID == ownerID)
}

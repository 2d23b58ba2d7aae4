package domain

type UserID string

type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the resolved authenticated user for a session.
type Identity struct {
	UID   UserID `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// HasRole reports whether the identity's role is in the allowed set.
func (i *Identity) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if i.Role == r {
			return true
		}
	}
	return false
}

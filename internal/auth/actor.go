package auth

// Role distinguishes the two marketplace parties. Every booking transition is
// authorized against the explicit actor rather than ambient session state.
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleProfessional:
		return Role(s), true
	}
	return "", false
}

// Actor identifies who is invoking an operation.
type Actor struct {
	ID   string
	Role Role
}

// IsProfessional reports whether the actor acts as a professional.
func (a Actor) IsProfessional() bool { return a.Role == RoleProfessional }

// IsClient reports whether the actor acts as a client.
func (a Actor) IsClient() bool { return a.Role == RoleClient }

package model

// Role is the closed set of user roles.
type Role string

const (
	// RoleVoter can cast exactly one vote.
	RoleVoter Role = "voter"
	// RoleAdmin manages the candidate roster and cannot vote.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleVoter || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

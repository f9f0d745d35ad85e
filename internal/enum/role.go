package enum

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
	RoleSuperAdmin Role = "super_admin"
	RolePending    Role = "pending"
	RoleNone       Role = ""
)

func (r Role) String() string {
	return string(r)
}

// Rank orders roles for permission comparisons. Owner ranks with admin,
// pending and none grant nothing.
func (r Role) Rank() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin, RoleOwner:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() > 0 && r.Rank() >= min.Rank()
}

func (r Role) IsAdmin() bool {
	return r.AtLeast(RoleAdmin)
}

// GraphQL enum values are upper case.
func (r Role) GraphQL() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin, RoleOwner:
		return "ADMIN"
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	case RolePending:
		return "PENDING"
	default:
		return ""
	}
}

func RoleFromGraphQL(s string) Role {
	switch s {
	case "USER":
		return RoleUser
	case "ADMIN":
		return RoleAdmin
	case "SUPER_ADMIN":
		return RoleSuperAdmin
	case "PENDING":
		return RolePending
	default:
		return RoleNone
	}
}

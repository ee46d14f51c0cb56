package domain

// Role identifies one of the four actor kinds. A token carries exactly one
// role claim; the role is decided once when the token is verified and carried
// explicitly from then on.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleCRP        Role = "crp"
	RoleExpert     Role = "expert"
	RoleSupervisor Role = "supervisor"
)

// Claim returns the JWT claim name that carries this role's identifier.
func (r Role) Claim() string {
	switch r {
	case RoleFarmer:
		return "farmerId"
	case RoleCRP:
		return "crpId"
	case RoleExpert:
		return "expertId"
	case RoleSupervisor:
		return "supervisorId"
	}
	return ""
}

// Roles lists every known role in resolution order.
var Roles = []Role{RoleFarmer, RoleCRP, RoleExpert, RoleSupervisor}

// Identity is the resolved caller: role plus the role-specific identifier,
// with display fields loaded from the live account record.
type Identity struct {
	Role  Role
	ID    string
	Name  string
	Email string
}

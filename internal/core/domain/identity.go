package domain

// Role gates which screens a session can reach.
type Role string

const (
	RoleNone     Role = "NONE"
	RoleResident Role = "RESIDENT"
	RoleManager  Role = "MANAGER"
	RoleGuest    Role = "GUEST"
)

// LoginKind selects which accept rule a login attempt is checked against.
// ADMIN maps to the manager role.
type LoginKind string

const (
	LoginResident LoginKind = "RESIDENT"
	LoginAdmin    LoginKind = "ADMIN"
	LoginGuest    LoginKind = "GUEST"
)

// Display names assigned to identities that do not log in with a username.
const (
	AdministratorName = "Administrator"
	VisitorName       = "Visitor"
)

// Identity is the authenticated actor of a session. The zero value is
// the anonymous identity.
type Identity struct {
	Name string `json:"name,omitempty"`
	Role Role   `json:"role"`
}

// Anonymous returns the identity of a session nobody is logged into.
func Anonymous() Identity {
	return Identity{Role: RoleNone}
}

// Authenticated reports whether the identity belongs to a logged-in actor.
func (i Identity) Authenticated() bool {
	return i.Role != RoleNone && i.Role != ""
}

// Credentials is the transient login input. Username and Password are used
// by resident and admin logins, AccessCode by guest logins.
type Credentials struct {
	Username   string `json:"-"`
	Password   string `json:"-"`
	AccessCode string `json:"-"`
}

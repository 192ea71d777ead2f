package domain

// SessionAttributes are the authentication values stored against a session
// token. They are written together at login and cleared together at logout,
// so either all three are set or none is.
type SessionAttributes struct {
	Username string
	Role     string
	UserID   int64
}

// Authenticated reports whether the attributes describe a logged-in user.
func (a SessionAttributes) Authenticated() bool {
	return a.Username != ""
}

// Identity is the resolved caller of a request: either Anonymous or an
// authenticated user with a role and id.
type Identity struct {
	Username string
	Role     string
	UserID   int64
}

// Anonymous is the identity of a session with no login attributes.
var Anonymous = Identity{}

// IdentityFrom converts stored session attributes into an Identity.
func IdentityFrom(a SessionAttributes) Identity {
	if !a.Authenticated() {
		return Anonymous
	}
	return Identity{Username: a.Username, Role: a.Role, UserID: a.UserID}
}

func (i Identity) IsAnonymous() bool {
	return i.Username == ""
}

func (i Identity) IsAdmin() bool {
	return !i.IsAnonymous() && i.Role == RoleAdmin
}

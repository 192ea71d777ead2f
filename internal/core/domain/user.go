package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User models a registered account.
//
// Password holds whatever the configured password scheme produced at
// registration; under the default plain scheme that is the password as typed.
// It is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the stored role grants admin capability.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package user

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Roles lists every accepted role, in declaration order.
var Roles = []Role{RoleAdmin, RoleUser, RoleSuperAdmin}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a user entity in the system.
type User struct {
	UUID      string    // UUID is the public identifier of the user
	Name      string    // Name is the display name of the user
	Email     string    // Email is the unique email address of the user
	Role      Role      // Role is the access level of the user
	CreatedAt time.Time // CreatedAt is set once on insert
	UpdatedAt time.Time // UpdatedAt changes on every write
	Posts     []Post    // Posts is only filled when the caller asked for it
}

// Post is a post as seen from its owner.
type Post struct {
	ID        int64
	Title     string
	Body      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the public projection of a user: no email, posts reduced to
// title and body.
type Profile struct {
	UUID  string
	Name  string
	Role  Role
	Posts []ProfilePost
}

// ProfilePost is a post inside a Profile.
type ProfilePost struct {
	Title string
	Body  *string
}

// Changes holds the fields of an update. Nil fields are left untouched.
type Changes struct {
	Name  *string
	Email *string
	Role  *Role
}

package domain

import (
	"errors"
	"time"
)

// Role classifies a user by capability set. The set is closed today
// (teacher/student) but open-ended: adding a role means adding a constant
// and a capability row, not touching the decision logic.
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrStudentInvalid = errors.New("invalid student request")
var ErrForbidden = errors.New("access forbidden")

// User is a persisted identity record. PasswordHash is write-only from the
// API's perspective: no response or projection ever carries it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the ephemeral per-request identity produced by credential
// verification. It is a projection of a User, never persisted, and carries
// no mutable state.
type Principal struct {
	Username string
	Role     Role
}

// NewPrincipal builds a Principal directly, bypassing credential
// verification. This is how tests inject an identity without a transport.
func NewPrincipal(username string, role Role) Principal {
	return Principal{Username: username, Role: role}
}

// Principal projects the user to its per-request identity.
func (u *User) Principal() Principal {
	return Principal{Username: u.Username, Role: u.Role}
}

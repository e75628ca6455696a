package entity

import "time"

type UserRole string

const (
	RoleAttendee     UserRole = "attendee"
	RoleEventManager UserRole = "event_manager"
	RoleAdmin        UserRole = "admin"
)

// Valid reports whether the role is one of the recognized role values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAttendee, RoleEventManager, RoleAdmin:
		return true
	}
	return false
}

// User is an identity record. PasswordHash is excluded from JSON so the
// stored hash never leaves the service boundary.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

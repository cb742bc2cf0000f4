package models

import "time"

// UserRole gates write access: administrators may mutate records, heads are
// read-only.
type UserRole string

const (
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleHead          UserRole = "HEAD"
)

// User defines the user model based on the 'users' table.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"-" db:"password"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package domain

import "time"

// Role is the closed set of authorization labels an account can carry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the value belongs to the closed role set.
// Unknown roles are rejected at registration, never coerced.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the identity record behind every token subject.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

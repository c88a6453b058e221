package domain

import "time"

// Role classifies what a member of the institution may do.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether the value is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for institution members. Admin accounts are
// provisioned out of band; no registration path produces one.
type User struct {
	ID           string
	Username     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

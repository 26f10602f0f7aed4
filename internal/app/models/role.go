package models

import "time"

// Role is a permission tier from the 'app_role' enum
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleReader Role = "reader"
)

// IsValid reports whether the role is a known enum value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleReader
}

// UserRole is an explicit (user, role) grant from the 'user_roles' table.
// A user holds at most one assignment per role value.
type UserRole struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

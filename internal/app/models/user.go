package models

import "time"

// User is an auth subject from the 'users' table. It exists only inside the
// auth subsystem's elevated scope; everything user-facing goes through the
// profile row the provisioning trigger creates alongside it.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Profile is the identity record keyed by the auth subject id. Created
// solely by the provisioning trigger, deleted solely by cascade from the
// auth subject.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Roles are attached when the caller may see them
	Roles []Role `json:"roles,omitempty"`
}

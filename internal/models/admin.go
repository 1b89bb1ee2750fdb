package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an administrator identity. Exactly one is expected to exist;
// it is seeded from configuration at startup and lives in memory only.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	PasswordHash string `json:"-"` // never serialized
}

// Identity is the normalized shape attached to authenticated requests and
// returned in login responses.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Identity returns the public identity for an admin.
func (a *Admin) Identity() Identity {
	return Identity{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

// Package models contains the domain entities stored in PostgreSQL.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. ID and CreatedAt are immutable after
// creation; UpdatedAt is refreshed on every successful update.
// Email is unique across all users, enforced by the store.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAtUtc"`
	UpdatedAt time.Time `json:"updatedAtUtc"`
}

// UserPatch carries the fields of an update request. An empty string
// means "leave untouched": only non-empty fields are applied.
type UserPatch struct {
	Email     string
	FirstName string
	LastName  string
}

// UserSnapshot captures the visible fields of a user at a point in
// time. Snapshots stay typed in memory and are serialized to JSON
// only at the storage boundary.
type UserSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// Snapshot returns the current visible fields of the user.
func (u *User) Snapshot() *UserSnapshot {
	return &UserSnapshot{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// ApplyPatch copies the non-empty patch fields onto the user.
func (u *User) ApplyPatch(p UserPatch) {
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.FirstName != "" {
		u.FirstName = p.FirstName
	}
	if p.LastName != "" {
		u.LastName = p.LastName
	}
}

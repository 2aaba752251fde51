package models

import (
	"time"

	"github.com/google/uuid"
)

// ChangeKind tags a user audit row with the mutation that produced it.
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota + 1
	ChangeUpdated
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "Created"
	case ChangeUpdated:
		return "Updated"
	case ChangeDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// UserChange is one append-only audit row. Rows reference their user
// by value, not by constraint, so history survives user deletion.
// Before is absent for Created, After is absent for Deleted.
type UserChange struct {
	ID        int64
	UserID    uuid.UUID
	ChangedAt time.Time
	Kind      ChangeKind
	ChangedBy string
	Before    *UserSnapshot
	After     *UserSnapshot
}

// Package changes persists the append-only user audit trail.
package changes

import (
	"context"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
)

// Repository is the storage contract for audit rows. Rows are only
// ever appended and read; nothing in the system updates or deletes
// them.
type Repository interface {
	Append(ctx context.Context, change *models.UserChange) error

	// ListByUser returns up to limit rows for the user, most recent
	// first, skipping offset rows. An unknown user yields an empty
	// slice.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.UserChange, error)
}

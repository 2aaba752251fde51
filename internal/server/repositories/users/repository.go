// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
)

// Repository is the storage contract for user rows.
//
// Create and Update return *common.ConflictError when the store
// rejects the write with a unique violation on email, and
// common.ErrorNotFound when the target row is absent.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)

	// ExistsByEmail is the advisory pre-check used for a friendly
	// early conflict response. It is race-prone by design; the unique
	// constraint remains the authoritative decision.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Package orders persists order rows.
package orders

import (
	"context"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
)

// Repository is the storage contract for order rows. The store
// assigns sequential ids on Create.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)

	// GetByUser returns the user's orders ordered by order time
	// ascending.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)

	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
}

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// OrderService is plain CRUD: orders carry no audit trail.
type OrderService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

func NewOrderService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *OrderService {
	return &OrderService{
		db:     db,
		rm:     rm,
		logger: logger.With("module", "order_service"),
	}
}

// Create persists a new order with a server-assigned timestamp. An
// out-of-range status is rejected before anything is written.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, status models.OrderStatus, amount float64) (*models.Order, error) {

	if !status.Valid() {
		return nil, common.ErrorInvalidStatus
	}

	order := &models.Order{
		UserID:    userID,
		OrderedAt: time.Now().UTC(),
		Status:    status,
		Amount:    amount,
	}

	if err := s.rm.Orders(s.db).Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "order created", "id", order.ID, "userId", userID.String(), "amount", amount)
	return order, nil
}

func (s *OrderService) GetAll(ctx context.Context) ([]models.Order, error) {
	return s.rm.Orders(s.db).GetAll(ctx)
}

func (s *OrderService) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.rm.Orders(s.db).GetByUser(ctx, userID)
}

// Update applies the supplied patch fields. A supplied status
// outside the defined set is skipped silently: the amount still
// applies, the stored status stays as it was.
func (s *OrderService) Update(ctx context.Context, id int64, patch models.OrderPatch) (*models.Order, error) {

	order, err := s.rm.Orders(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		order.Amount = *patch.Amount
	}
	if patch.Status != nil && patch.Status.Valid() {
		order.Status = *patch.Status
	}

	if err := s.rm.Orders(s.db).Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "order updated", "id", id)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.rm.Orders(s.db).Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "order deleted", "id", id)
	return nil
}

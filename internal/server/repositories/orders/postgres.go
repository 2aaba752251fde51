package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) error {

	query :=
		`INSERT INTO orders (user_id, ordered_at, status, amount)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.OrderedAt, int(order.Status), order.Amount).Scan(&order.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query :=
		`SELECT id, user_id, ordered_at, status, amount FROM orders
		 WHERE id = $1
		 `

	order := &models.Order{}
	var status int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.OrderedAt, &status, &order.Amount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	order.Status = models.OrderStatus(status)

	return order, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query :=
		`SELECT id, user_id, ordered_at, status, amount FROM orders
		 `

	return r.queryOrders(ctx, query)
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	query :=
		`SELECT id, user_id, ordered_at, status, amount FROM orders
		 WHERE user_id = $1
		 ORDER BY ordered_at
		 `

	return r.queryOrders(ctx, query, userID)
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		var (
			order  models.Order
			status int
		)
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderedAt, &status, &order.Amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		order.Status = models.OrderStatus(status)
		result = append(result, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, order *models.Order) error {
	query :=
		`UPDATE orders SET status = $2, amount = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, order.ID, int(order.Status), order.Amount)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM orders
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

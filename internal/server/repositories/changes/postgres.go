package changes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

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

// marshalSnapshot serializes a snapshot for the text column, keeping
// NULL for an absent side (before on Created, after on Deleted).
func marshalSnapshot(s *models.UserSnapshot) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("snapshot marshal error: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalSnapshot(ns sql.NullString) (*models.UserSnapshot, error) {
	if !ns.Valid {
		return nil, nil
	}
	s := &models.UserSnapshot{}
	if err := json.Unmarshal([]byte(ns.String), s); err != nil {
		return nil, fmt.Errorf("snapshot unmarshal error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Append(ctx context.Context, change *models.UserChange) error {

	before, err := marshalSnapshot(change.Before)
	if err != nil {
		return err
	}
	after, err := marshalSnapshot(change.After)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO user_changes (user_id, changed_at, change_kind, changed_by, before_json, after_json)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		change.UserID, change.ChangedAt, int(change.Kind), change.ChangedBy, before, after).Scan(&change.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.UserChange, error) {
	query :=
		`SELECT id, user_id, changed_at, change_kind, changed_by, before_json, after_json FROM user_changes
		 WHERE user_id = $1
		 ORDER BY changed_at DESC
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.UserChange, 0)
	for rows.Next() {
		var (
			c             models.UserChange
			kind          int
			before, after sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.ChangedAt, &kind, &c.ChangedBy, &before, &after); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		c.Kind = models.ChangeKind(kind)
		if c.Before, err = unmarshalSnapshot(before); err != nil {
			return nil, err
		}
		if c.After, err = unmarshalSnapshot(after); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Package services orchestrates user and order mutations over the
// repositories, including the audit trail of user changes.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	defaultHistoryTake = 50
	maxHistoryTake     = 200
)

// UserService owns the user lifecycle. Every mutation writes its
// audit row inside the same transaction as the primary row, so
// either both commit or neither does.
type UserService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	audit  *AuditRecorder
	logger logging.Logger
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, audit *AuditRecorder, logger logging.Logger) *UserService {
	return &UserService{
		db:     db,
		rm:     rm,
		audit:  audit,
		logger: logger.With("module", "user_service"),
	}
}

// Create inserts a new user and its Created audit row. The
// ExistsByEmail pre-check only produces a friendly early conflict:
// two racing creates can both pass it, and then the unique
// constraint decides which one wins.
func (s *UserService) Create(ctx context.Context, email, firstName, lastName string) (*models.User, error) {

	exists, err := s.rm.Users(s.db).ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.NewConflictError("email", email)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.audit.Record(ctx, s.rm.Changes(tx), models.ChangeCreated, user.ID, nil, user.Snapshot())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "id", user.ID.String(), "email", user.Email)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.rm.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.rm.Users(s.db).GetAll(ctx)
}

// Update applies only the non-empty patch fields, refreshes
// UpdatedAt and writes an Updated audit row with the snapshots taken
// right before and right after applying the patch. A uniqueness
// violation on email rolls back the whole attempt.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {

	user, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := user.Snapshot()
	user.ApplyPatch(patch)
	user.UpdatedAt = time.Now().UTC()
	after := user.Snapshot()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).Update(ctx, user); err != nil {
			return err
		}
		return s.audit.Record(ctx, s.rm.Changes(tx), models.ChangeUpdated, user.ID, before, after)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "id", user.ID.String())
	return user, nil
}

// Delete removes the user and writes a Deleted audit row carrying
// the last known snapshot. The audit row has no user to reference
// afterwards; that is intentional, history outlives the account.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {

	user, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}

	before := user.Snapshot()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, s.rm.Changes(tx), models.ChangeDeleted, id, before, nil)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "id", id.String())
	return nil
}

// History lists the user's audit rows, most recent first. take is
// clamped to (0, 200] with a default of 50, skip to a minimum of 0.
// An id with no history yields an empty slice, not an error.
func (s *UserService) History(ctx context.Context, id uuid.UUID, take, skip int) ([]models.UserChange, error) {

	if take <= 0 {
		take = defaultHistoryTake
	}
	if take > maxHistoryTake {
		take = maxHistoryTake
	}
	if skip < 0 {
		skip = 0
	}

	return s.rm.Changes(s.db).ListByUser(ctx, id, take, skip)
}

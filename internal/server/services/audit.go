package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/changes"
	"github.com/google/uuid"
)

// SystemActor labels audit rows written by the service itself. The
// actor field exists for future extension; today every mutation is
// attributed to it.
const SystemActor = "system"

// AuditRecorder appends user audit rows. Record must be called with
// a changes repository bound to the same transaction as the primary
// mutation: the caller's transaction is what makes the pair atomic.
type AuditRecorder struct {
	actor string
}

func NewAuditRecorder(actor string) *AuditRecorder {
	if actor == "" {
		actor = SystemActor
	}
	return &AuditRecorder{actor: actor}
}

func (a *AuditRecorder) Record(ctx context.Context, repo changes.Repository, kind models.ChangeKind,
	userID uuid.UUID, before, after *models.UserSnapshot) error {

	change := &models.UserChange{
		UserID:    userID,
		ChangedAt: time.Now().UTC(),
		Kind:      kind,
		ChangedBy: a.actor,
		Before:    before,
		After:     after,
	}

	if err := repo.Append(ctx, change); err != nil {
		return fmt.Errorf("audit append error: %w", err)
	}

	return nil
}

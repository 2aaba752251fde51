package httpapi

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/google/uuid"
)

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}

// updateUserRequest is a PATCH-style payload even though the route is
// a PUT: omitted fields stay untouched.
type updateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
}

type createOrderRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Status int       `json:"status" binding:"required"`
	Amount *float64  `json:"amount" binding:"required,gte=0"`
}

type updateOrderRequest struct {
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
	Status *int     `json:"status"`
}

// userChangeResponse carries snapshots as opaque serialized text, so
// history consumers never depend on the snapshot field layout.
type userChangeResponse struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	ChangedAt  time.Time `json:"changedAt"`
	ChangeKind string    `json:"changeKind"`
	ChangedBy  string    `json:"changedBy"`
	BeforeJSON *string   `json:"beforeJson,omitempty"`
	AfterJSON  *string   `json:"afterJson,omitempty"`
}

func snapshotText(s *models.UserSnapshot) (*string, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	text := string(b)
	return &text, nil
}

func toChangeResponse(c *models.UserChange) (*userChangeResponse, error) {
	before, err := snapshotText(c.Before)
	if err != nil {
		return nil, err
	}
	after, err := snapshotText(c.After)
	if err != nil {
		return nil, err
	}
	return &userChangeResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		ChangedAt:  c.ChangedAt,
		ChangeKind: c.Kind.String(),
		ChangedBy:  c.ChangedBy,
		BeforeJSON: before,
		AfterJSON:  after,
	}, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order states. Values are stored
// as small integers; anything outside [StatusNew, StatusCanceled] is
// rejected before persistence.
type OrderStatus int

const (
	StatusNew OrderStatus = iota + 1
	StatusAccepted
	StatusProcessing
	StatusSent
	StatusDelivered
	StatusCanceled
)

// Valid reports whether s is one of the six defined states.
func (s OrderStatus) Valid() bool {
	return s >= StatusNew && s <= StatusCanceled
}

func (s OrderStatus) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusAccepted:
		return "Accepted"
	case StatusProcessing:
		return "Processing"
	case StatusSent:
		return "Sent"
	case StatusDelivered:
		return "Delivered"
	case StatusCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Order belongs to a user by value only: there is no foreign key, so
// deleting a user neither blocks on nor removes its orders.
type Order struct {
	ID        int64       `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	OrderedAt time.Time   `json:"dateOrder"`
	Status    OrderStatus `json:"status"`
	Amount    float64     `json:"amount"`
}

// OrderPatch carries the fields of an order update. Nil means "leave
// untouched". A non-nil invalid status is skipped silently: the
// field is treated as a no-op, not an error.
type OrderPatch struct {
	Amount *float64
	Status *OrderStatus
}

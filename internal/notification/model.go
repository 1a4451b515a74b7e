package notification

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.NotFound("notification not found")
)

// Notification is one persisted event copy addressed to a single user.
// Delivery (push, email) is a separate collaborator's concern; this table is
// the durable record the in-app feed reads.
type Notification struct {
	ID        string
	UserID    string
	Kind      Kind
	BookingID string
	Payload   map[string]any
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}

package http

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/notification"
	"github.com/servipro-app/servipro-backend/internal/pkg/request"
)

// ListNotificationsRequest defines query parameters for the notification feed.
type ListNotificationsRequest struct {
	request.ListParams
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse is one feed entry.
type NotificationResponse struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	BookingID string         `json:"booking_id"`
	Payload   map[string]any `json:"payload"`
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		BookingID: n.BookingID,
		Payload:   n.Payload,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

package http

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/booking"
)

// CreateBookingRequest reserves a slot with a professional.
type CreateBookingRequest struct {
	ProfessionalID string    `json:"professional_id" binding:"required,uuid"`
	ServiceID      string    `json:"service_id" binding:"required,uuid"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
	Notes          string    `json:"notes" binding:"omitempty,max=2000"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// RescheduleBookingRequest proposes a new start time.
type RescheduleBookingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Message     string    `json:"message" binding:"omitempty,max=500"`
}

// UpdateNotesRequest replaces the booking's shared notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ListBookingsRequest carries the list query parameters.
type ListBookingsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// SlotsRequest selects the service and day for slot listing.
type SlotsRequest struct {
	ServiceID string `form:"service_id" binding:"required,uuid"`
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
}

// BookingResponse is the API shape of one booking.
type BookingResponse struct {
	ID               string    `json:"id"`
	ProfessionalID   string    `json:"professional_id"`
	ProfessionalName string    `json:"professional_name,omitempty"`
	ClientID         string    `json:"client_id"`
	ClientName       string    `json:"client_name,omitempty"`
	ServiceID        string    `json:"service_id"`
	ServiceName      string    `json:"service_name,omitempty"`
	DurationMinutes  int       `json:"duration_minutes"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	CancelReason     *string   `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		ProfessionalID:   b.ProfessionalID,
		ProfessionalName: b.ProfessionalName,
		ClientID:         b.ClientID,
		ClientName:       b.ClientName,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		DurationMinutes:  b.DurationMinutes,
		ScheduledAt:      b.ScheduledAt,
		EndTime:          b.End(),
		Status:           string(b.Status),
		Notes:            b.Notes,
		CancelReason:     b.CancelReason,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// RescheduleResponse is one audit entry of a booking moving.
type RescheduleResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	OldTime   time.Time `json:"old_time"`
	NewTime   time.Time `json:"new_time"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRescheduleResponse(r booking.Reschedule) RescheduleResponse {
	return RescheduleResponse{
		ID:        r.ID,
		ActorID:   r.ActorID,
		OldTime:   r.OldTime,
		NewTime:   r.NewTime,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

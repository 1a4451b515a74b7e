package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/booking"
	"github.com/servipro-app/servipro-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create reserves a slot. The authenticated user becomes the client.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor := auth.GetActor(c)

	b, err := h.service.Reserve(c.Request.Context(), actor, booking.ReserveRequest{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns one booking if the caller is a party to it.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns the caller's bookings, newest first.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.From != "" {
		t, _ := time.Parse("2006-01-02", req.From)
		filter.From = &t
	}
	if req.To != "" {
		t, _ := time.Parse("2006-01-02", req.To)
		end := t.AddDate(0, 0, 1)
		filter.To = &end
	}

	bookings, total, err := h.service.List(c.Request.Context(), auth.GetActor(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// transition runs one of the plain status moves (confirm, start, complete).
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, actor auth.Actor, id string) (*booking.Booking, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := fn(c.Request.Context(), auth.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Confirm(c *gin.Context)  { h.transition(c, h.service.Confirm) }
func (h *Handler) Start(c *gin.Context)    { h.transition(c, h.service.Start) }
func (h *Handler) Complete(c *gin.Context) { h.transition(c, h.service.Complete) }

// Cancel drops a booking before it is completed and frees its slot.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// The body is optional: a bare cancel carries no reason.
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), auth.GetActor(c), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Reschedule moves a booking to a new time, keeping its status.
func (h *Handler) Reschedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Reschedule(c.Request.Context(), auth.GetActor(c), id, req.ScheduledAt, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// UpdateNotes replaces the shared notes on a live booking.
func (h *Handler) UpdateNotes(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateNotes(c.Request.Context(), auth.GetActor(c), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListReschedules returns a booking's move history, oldest first.
func (h *Handler) ListReschedules(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	records, err := h.service.ListReschedules(c.Request.Context(), auth.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RescheduleResponse, len(records))
	for i, r := range records {
		items[i] = NewRescheduleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"reschedules": items})
}

// Slots lists the bookable start times for one service on one day.
func (h *Handler) Slots(c *gin.Context) {
	professionalID := c.Param("id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), professionalID, req.ServiceID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	if slots == nil {
		slots = []time.Time{}
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "slots": slots})
}

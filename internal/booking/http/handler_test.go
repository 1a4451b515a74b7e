package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/booking"
)

// cancelStub records the reason passed through to Cancel.
type cancelStub struct {
	booking.Service
	reason string
}

func (s *cancelStub) Cancel(ctx context.Context, actor auth.Actor, id, reason string) (*booking.Booking, error) {
	s.reason = reason
	return &booking.Booking{
		ID:              id,
		Status:          booking.StatusCancelled,
		DurationMinutes: 60,
		ScheduledAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}, nil
}

func newCancelRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "22222222-2222-2222-2222-222222222222")
		c.Set("userRole", string(auth.RoleClient))
	})
	h := NewHandler(svc)
	r.POST("/bookings/:id/cancel", h.Cancel)
	return r
}

func TestCancelBody(t *testing.T) {
	const id = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	t.Run("accepts request without a body", func(t *testing.T) {
		stub := &cancelStub{}
		r := newCancelRouter(stub)

		req := httptest.NewRequest(http.MethodPost, "/bookings/"+id+"/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, stub.reason)
	})

	t.Run("passes reason through when given", func(t *testing.T) {
		stub := &cancelStub{}
		r := newCancelRouter(stub)

		body := strings.NewReader(`{"reason":"feeling unwell"}`)
		req := httptest.NewRequest(http.MethodPost, "/bookings/"+id+"/cancel", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "feeling unwell", stub.reason)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		stub := &cancelStub{}
		r := newCancelRouter(stub)

		body := strings.NewReader(`{"reason":`)
		req := httptest.NewRequest(http.MethodPost, "/bookings/"+id+"/cancel", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/availability"
	"github.com/servipro-app/servipro-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// GetWeek returns a professional's full recurring schedule.
func (h *Handler) GetWeek(c *gin.Context) {
	professionalID := c.Param("id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	windows, err := h.service.GetWeek(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}
	c.JSON(http.StatusOK, gin.H{"windows": items})
}

// SetDay replaces the windows of one weekday for the authenticated professional.
func (h *Handler) SetDay(c *gin.Context) {
	professionalID := c.Param("id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekday"})
		return
	}

	var req SetWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	windows := make([]availability.Window, 0, len(req.Windows))
	for _, p := range req.Windows {
		start, err := availability.ParseClock(p.Start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		end, err := availability.ParseClock(p.End)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		windows = append(windows, availability.Window{
			ProfessionalID: professionalID,
			Weekday:        weekday,
			StartMinute:    start,
			EndMinute:      end,
		})
	}

	actor := auth.GetActor(c)
	if err := h.service.SetWindows(c.Request.Context(), actor, professionalID, weekday, windows); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

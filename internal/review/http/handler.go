package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/pkg/response"
	"github.com/servipro-app/servipro-backend/internal/review"
)

type Handler struct {
	service review.Service
}

func NewHandler(service review.Service) *Handler {
	return &Handler{service: service}
}

// Submit rates a completed booking. The authenticated user must be its client.
func (h *Handler) Submit(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rev, err := h.service.Submit(c.Request.Context(), auth.GetActor(c), review.SubmitRequest{
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rev))
}

// List returns a professional's reviews, newest first.
func (h *Handler) List(c *gin.Context) {
	professionalID := c.Param("id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	reviews, total, err := h.service.List(c.Request.Context(), review.Filter{
		ProfessionalID: professionalID,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = NewReviewResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Summary returns a professional's review count and average rating.
func (h *Handler) Summary(c *gin.Context) {
	professionalID := c.Param("id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.Summarize(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Count: s.Count, AverageRating: s.AverageRating})
}

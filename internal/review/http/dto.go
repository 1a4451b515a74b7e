package http

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/review"
)

// SubmitReviewRequest rates a completed booking.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// ListReviewsRequest carries the list query parameters.
type ListReviewsRequest struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse is the API shape of one review.
type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// SummaryResponse aggregates a professional's ratings.
type SummaryResponse struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

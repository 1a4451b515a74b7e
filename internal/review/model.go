package review

import (
	"net/http"
	"time"

	"github.com/servipro-app/servipro-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("review not found")
	ErrAlreadyReviewed = apperror.Conflict("booking has already been reviewed")
	ErrNotReviewable   = apperror.Conflict("only completed bookings can be reviewed")
	ErrNotClient       = apperror.New(http.StatusForbidden, "only the booking's client may leave a review")
	ErrInvalidRating   = apperror.BadRequest("rating must be between 1 and 5")
	ErrCommentTooShort = apperror.BadRequest("comment must be at least 10 characters")
)

// Review is one client's verdict on one completed booking. A booking can be
// reviewed at most once; the unique index on booking_id enforces it.
type Review struct {
	ID             string
	BookingID      string
	ProfessionalID string
	ClientID       string
	ClientName     string
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

// Summary aggregates a professional's reviews.
type Summary struct {
	Count         int
	AverageRating float64
}

// Filter defines parameters for listing reviews.
type Filter struct {
	ProfessionalID string
	Page           int
	PageSize       int
}

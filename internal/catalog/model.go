package catalog

import (
	"net/http"
	"time"

	"github.com/servipro-app/servipro-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("service not found")
	ErrEmptyName       = apperror.BadRequest("name cannot be empty")
	ErrInvalidDuration = apperror.BadRequest("duration must be a positive number of minutes")
	ErrNotOwner        = apperror.New(http.StatusForbidden, "only the owning professional may edit this service")
)

// Service is one offering in a professional's catalog. DurationMinutes is the
// unit slot generation steps by; bookings copy it at creation time, so editing
// it here never changes existing bookings.
type Service struct {
	ID              string
	ProfessionalID  string
	Name            string
	Description     *string
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing services.
type Filter struct {
	ProfessionalID string
	ActiveOnly     bool
	Page           int
	PageSize       int
}

package http

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/catalog"
	"github.com/servipro-app/servipro-backend/internal/pkg/request"
)

// ListServicesRequest defines query parameters for listing a professional's services.
type ListServicesRequest struct {
	request.ListParams
	ActiveOnly bool `form:"active_only"`
}

// ServiceResponse is the shape of service data returned in API responses.
type ServiceResponse struct {
	ID              string    `json:"id"`
	ProfessionalID  string    `json:"professional_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	Active          *bool   `json:"active"`
}

package catalog

import (
	"context"
	"strings"

	"github.com/servipro-app/servipro-backend/internal/auth"
)

type CreateRequest struct {
	Name            string
	Description     *string
	DurationMinutes int
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Active          *bool
}

// Catalog is the business layer over a professional's services. The entity
// itself is named Service, so the layer carries the package name instead.
type Catalog interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Service, error)
}

type catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) Catalog {
	return &catalog{repo: repo}
}

func (c *catalog) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Service, error) {
	if !actor.IsProfessional() {
		return nil, ErrNotOwner
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	s := &Service{
		ProfessionalID:  actor.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}

	if err := c.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *catalog) GetByID(ctx context.Context, id string) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *catalog) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	return c.repo.List(ctx, filter)
}

func (c *catalog) Update(ctx context.Context, actor auth.Actor, id string, req UpdateRequest) (*Service, error) {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsProfessional() || s.ProfessionalID != actor.ID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		s.Description = req.Description
	}
	if req.DurationMinutes != nil {
		// Existing bookings keep their duration snapshot; only future
		// reservations see the new value.
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		s.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		s.Active = *req.Active
	}

	if err := c.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

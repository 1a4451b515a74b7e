package availability

import (
	"context"

	"github.com/servipro-app/servipro-backend/internal/auth"
)

type Service interface {
	// GetWindows returns one day's windows ordered by start time.
	GetWindows(ctx context.Context, professionalID string, weekday int) ([]Window, error)

	// GetWeek returns the full recurring schedule.
	GetWeek(ctx context.Context, professionalID string) ([]Window, error)

	// SetWindows replaces one day's windows after validating the day invariant.
	// Only the professional themselves may edit their schedule.
	SetWindows(ctx context.Context, actor auth.Actor, professionalID string, weekday int, windows []Window) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetWindows(ctx context.Context, professionalID string, weekday int) ([]Window, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	return s.repo.ListByDay(ctx, professionalID, weekday)
}

func (s *service) GetWeek(ctx context.Context, professionalID string) ([]Window, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *service) SetWindows(ctx context.Context, actor auth.Actor, professionalID string, weekday int, windows []Window) error {
	if !actor.IsProfessional() || actor.ID != professionalID {
		return ErrNotOwner
	}

	if err := ValidateDay(weekday, windows); err != nil {
		return err
	}

	return s.repo.ReplaceDay(ctx, professionalID, weekday, windows)
}

package review

import (
	"context"
	"strings"

	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/booking"
	"github.com/servipro-app/servipro-backend/internal/notification"
)

type SubmitRequest struct {
	BookingID string
	Rating    int
	Comment   string
}

type Service interface {
	// Submit records the client's review of a completed booking. Each booking
	// can be reviewed once.
	Submit(ctx context.Context, actor auth.Actor, req SubmitRequest) (*Review, error)

	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, professionalID string) (Summary, error)
}

type service struct {
	repo     Repository
	bookings booking.Service
	events   notification.Publisher
}

func NewService(repo Repository, bookings booking.Service, events notification.Publisher) Service {
	return &service{repo: repo, bookings: bookings, events: events}
}

func (s *service) Submit(ctx context.Context, actor auth.Actor, req SubmitRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if comment != "" && len([]rune(comment)) < 10 {
		return nil, ErrCommentTooShort
	}

	b, err := s.bookings.GetByID(ctx, actor, req.BookingID)
	if err != nil {
		return nil, err
	}
	if actor.ID != b.ClientID {
		return nil, ErrNotClient
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrNotReviewable
	}

	rev := &Review{
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		Rating:         req.Rating,
		Comment:        comment,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notification.Event{
		Kind:           notification.ReviewSubmitted,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
		Rating:         rev.Rating,
	})
	return rev, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Summarize(ctx context.Context, professionalID string) (Summary, error) {
	return s.repo.Summarize(ctx, professionalID)
}

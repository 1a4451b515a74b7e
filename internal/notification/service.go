package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Publisher is the surface the booking and review services emit events through.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

type Service interface {
	Publisher
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// Publish persists one notification per recipient and logs the event. Failures
// are logged and swallowed: a lost notification must never roll back or fail
// the state transition that produced it.
func (s *service) Publish(ctx context.Context, ev Event) {
	payload := buildPayload(ev)

	for _, recipient := range ev.Recipients() {
		n := &Notification{
			UserID:    recipient,
			Kind:      ev.Kind,
			BookingID: ev.BookingID,
			Payload:   payload,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			s.logger.Error("failed to persist notification",
				zap.String("kind", string(ev.Kind)),
				zap.String("booking_id", ev.BookingID),
				zap.String("user_id", recipient),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("booking event",
		zap.String("kind", string(ev.Kind)),
		zap.String("booking_id", ev.BookingID),
		zap.String("professional_id", ev.ProfessionalID),
		zap.String("client_id", ev.ClientID),
		zap.String("actor_id", ev.ActorID),
	)
}

func buildPayload(ev Event) map[string]any {
	payload := map[string]any{
		"professional_id": ev.ProfessionalID,
		"client_id":       ev.ClientID,
		"actor_id":        ev.ActorID,
	}
	if ev.ScheduledAt != nil {
		payload["scheduled_at"] = ev.ScheduledAt.Format(time.RFC3339)
	}
	if ev.OldTime != nil {
		payload["old_time"] = ev.OldTime.Format(time.RFC3339)
	}
	if ev.Reason != "" {
		payload["reason"] = ev.Reason
	}
	if ev.Rating != 0 {
		payload["rating"] = ev.Rating
	}
	return payload
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	created   []*Notification
	createErr error
}

func (r *fakeRepo) Create(ctx context.Context, n *Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = "n-1"
	n.CreatedAt = time.Now()
	r.created = append(r.created, n)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return r.created, len(r.created), nil
}

func (r *fakeRepo) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}

func TestPublishFansOutToCounterparts(t *testing.T) {
	newTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("client action notifies the professional", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, zap.NewNop())

		svc.Publish(context.Background(), Event{
			Kind:           BookingCreated,
			BookingID:      "b-1",
			ProfessionalID: "pro-1",
			ClientID:       "client-1",
			ActorID:        "client-1",
			ScheduledAt:    &newTime,
		})

		require.Len(t, repo.created, 1)
		assert.Equal(t, "pro-1", repo.created[0].UserID)
		assert.Equal(t, BookingCreated, repo.created[0].Kind)
		assert.Equal(t, newTime.Format(time.RFC3339), repo.created[0].Payload["scheduled_at"])
	})

	t.Run("professional action notifies the client", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, zap.NewNop())

		svc.Publish(context.Background(), Event{
			Kind:           BookingConfirmed,
			BookingID:      "b-1",
			ProfessionalID: "pro-1",
			ClientID:       "client-1",
			ActorID:        "pro-1",
		})

		require.Len(t, repo.created, 1)
		assert.Equal(t, "client-1", repo.created[0].UserID)
	})

	t.Run("persistence failures are swallowed", func(t *testing.T) {
		repo := &fakeRepo{createErr: errors.New("db down")}
		svc := NewService(repo, zap.NewNop())

		assert.NotPanics(t, func() {
			svc.Publish(context.Background(), Event{
				Kind:           BookingCancelled,
				BookingID:      "b-1",
				ProfessionalID: "pro-1",
				ClientID:       "client-1",
				ActorID:        "client-1",
				Reason:         "sick",
			})
		})
	})
}

func TestEventRecipients(t *testing.T) {
	ev := Event{ProfessionalID: "pro", ClientID: "client", ActorID: "client"}
	assert.Equal(t, []string{"pro"}, ev.Recipients())

	ev.ActorID = "pro"
	assert.Equal(t, []string{"client"}, ev.Recipients())

	ev.ActorID = "system"
	assert.Equal(t, []string{"pro", "client"}, ev.Recipients())
}

package review

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/booking"
	"github.com/servipro-app/servipro-backend/internal/notification"
)

const (
	proID     = "11111111-1111-1111-1111-111111111111"
	clientID  = "22222222-2222-2222-2222-222222222222"
	bookingID = "33333333-3333-3333-3333-333333333333"
)

var clientActor = auth.Actor{ID: clientID, Role: auth.RoleClient}

// fakeBookings serves fixed bookings to the review gate. Only GetByID matters
// here; the remaining booking.Service methods are never reached.
type fakeBookings struct {
	booking.Service
	bookings map[string]*booking.Booking
}

func (f *fakeBookings) GetByID(ctx context.Context, actor auth.Actor, id string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || !b.IsParty(actor.ID) {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

type fakeRepo struct {
	reviews map[string]*Review // keyed by booking id
}

func (r *fakeRepo) Create(ctx context.Context, rev *Review) error {
	if _, exists := r.reviews[rev.BookingID]; exists {
		return ErrAlreadyReviewed
	}
	rev.ID = "review-" + rev.BookingID
	rev.CreatedAt = time.Now()
	r.reviews[rev.BookingID] = rev
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	var out []*Review
	for _, rev := range r.reviews {
		if rev.ProfessionalID == filter.ProfessionalID {
			out = append(out, rev)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Summarize(ctx context.Context, professionalID string) (Summary, error) {
	var s Summary
	for _, rev := range r.reviews {
		if rev.ProfessionalID == professionalID {
			s.Count++
			s.AverageRating += float64(rev.Rating)
		}
	}
	if s.Count > 0 {
		s.AverageRating /= float64(s.Count)
	}
	return s, nil
}

type fakeEvents struct {
	events []notification.Event
}

func (f *fakeEvents) Publish(ctx context.Context, ev notification.Event) {
	f.events = append(f.events, ev)
}

func newFixture(status booking.Status) (Service, *fakeRepo, *fakeEvents) {
	repo := &fakeRepo{reviews: make(map[string]*Review)}
	events := &fakeEvents{}
	bookings := &fakeBookings{bookings: map[string]*booking.Booking{
		bookingID: {
			ID:             bookingID,
			ProfessionalID: proID,
			ClientID:       clientID,
			Status:         status,
		},
	}}
	return NewService(repo, bookings, events), repo, events
}

func TestSubmit(t *testing.T) {
	t.Run("accepts review of completed booking", func(t *testing.T) {
		svc, _, events := newFixture(booking.StatusCompleted)

		rev, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
			BookingID: bookingID,
			Rating:    5,
			Comment:   "excellent service, highly recommended",
		})
		require.NoError(t, err)
		assert.Equal(t, proID, rev.ProfessionalID)
		assert.Equal(t, 5, rev.Rating)

		require.Len(t, events.events, 1)
		assert.Equal(t, notification.ReviewSubmitted, events.events[0].Kind)
		assert.Equal(t, 5, events.events[0].Rating)
	})

	t.Run("empty comment is allowed", func(t *testing.T) {
		svc, _, _ := newFixture(booking.StatusCompleted)

		_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
			BookingID: bookingID,
			Rating:    3,
		})
		assert.NoError(t, err)
	})

	t.Run("short comment is rejected", func(t *testing.T) {
		svc, _, _ := newFixture(booking.StatusCompleted)

		_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
			BookingID: bookingID,
			Rating:    3,
			Comment:   "meh",
		})
		assert.ErrorIs(t, err, ErrCommentTooShort)
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc, _, _ := newFixture(booking.StatusCompleted)

		for _, rating := range []int{0, -1, 6, 100} {
			_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
				BookingID: bookingID,
				Rating:    rating,
			})
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
		}
	})

	t.Run("only completed bookings are reviewable", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusPending,
			booking.StatusConfirmed,
			booking.StatusInProgress,
			booking.StatusCancelled,
		} {
			svc, _, _ := newFixture(status)
			_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
				BookingID: bookingID,
				Rating:    4,
			})
			assert.ErrorIs(t, err, ErrNotReviewable, "status %s", status)
		}
	})

	t.Run("only the client may review", func(t *testing.T) {
		svc, _, _ := newFixture(booking.StatusCompleted)

		proActor := auth.Actor{ID: proID, Role: auth.RoleProfessional}
		_, err := svc.Submit(context.Background(), proActor, SubmitRequest{
			BookingID: bookingID,
			Rating:    5,
		})
		assert.ErrorIs(t, err, ErrNotClient)
	})

	t.Run("second review of same booking is rejected", func(t *testing.T) {
		svc, _, events := newFixture(booking.StatusCompleted)

		_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{BookingID: bookingID, Rating: 5})
		require.NoError(t, err)

		_, err = svc.Submit(context.Background(), clientActor, SubmitRequest{BookingID: bookingID, Rating: 1})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		assert.Len(t, events.events, 1, "rejected reviews must not emit events")
	})

	t.Run("comment is trimmed", func(t *testing.T) {
		svc, repo, _ := newFixture(booking.StatusCompleted)

		_, err := svc.Submit(context.Background(), clientActor, SubmitRequest{
			BookingID: bookingID,
			Rating:    4,
			Comment:   "   great experience overall   ",
		})
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(repo.reviews[bookingID].Comment, " "))
	})
}

func TestSummarize(t *testing.T) {
	svc, repo, _ := newFixture(booking.StatusCompleted)
	repo.reviews["b1"] = &Review{BookingID: "b1", ProfessionalID: proID, Rating: 5}
	repo.reviews["b2"] = &Review{BookingID: "b2", ProfessionalID: proID, Rating: 3}

	s, err := svc.Summarize(context.Background(), proID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 4.0, s.AverageRating, 0.001)
}

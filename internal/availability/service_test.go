package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servipro-app/servipro-backend/internal/auth"
)

type fakeRepo struct {
	byDay map[int][]Window
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byDay: make(map[int][]Window)}
}

func (r *fakeRepo) ListByDay(ctx context.Context, professionalID string, weekday int) ([]Window, error) {
	return r.byDay[weekday], nil
}

func (r *fakeRepo) ListByProfessional(ctx context.Context, professionalID string) ([]Window, error) {
	var out []Window
	for d := 0; d < 7; d++ {
		out = append(out, r.byDay[d]...)
	}
	return out, nil
}

func (r *fakeRepo) ReplaceDay(ctx context.Context, professionalID string, weekday int, windows []Window) error {
	r.byDay[weekday] = windows
	return nil
}

const proID = "11111111-1111-1111-1111-111111111111"

var proActor = auth.Actor{ID: proID, Role: auth.RoleProfessional}

func TestSetWindows(t *testing.T) {
	w := func(start, end int) Window {
		return Window{ProfessionalID: proID, Weekday: 1, StartMinute: start, EndMinute: end}
	}

	t.Run("replaces the day", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		err := svc.SetWindows(context.Background(), proActor, proID, 1, []Window{w(540, 1020)})
		require.NoError(t, err)

		got, err := svc.GetWindows(context.Background(), proID, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 540, got[0].StartMinute)

		// Replacing again drops the old set.
		err = svc.SetWindows(context.Background(), proActor, proID, 1, []Window{w(600, 720)})
		require.NoError(t, err)
		got, err = svc.GetWindows(context.Background(), proID, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 600, got[0].StartMinute)
	})

	t.Run("only the owner may edit", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		other := auth.Actor{ID: "someone-else", Role: auth.RoleProfessional}
		err := svc.SetWindows(context.Background(), other, proID, 1, nil)
		assert.ErrorIs(t, err, ErrNotOwner)

		client := auth.Actor{ID: proID, Role: auth.RoleClient}
		err = svc.SetWindows(context.Background(), client, proID, 1, nil)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects invalid day", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		err := svc.SetWindows(context.Background(), proActor, proID, 1, []Window{w(540, 700), w(660, 720)})
		assert.ErrorIs(t, err, ErrWindowOverlap)
		assert.Empty(t, repo.byDay[1], "invalid replacement must not touch stored windows")
	})
}

func TestGetWindowsRejectsBadWeekday(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.GetWindows(context.Background(), proID, 9)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

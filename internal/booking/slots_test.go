package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servipro-app/servipro-backend/internal/availability"
)

func TestCandidateSlots(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	past := day.Add(-24 * time.Hour)

	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}
	window := func(startH, endH int) availability.Window {
		return availability.Window{Weekday: 1, StartMinute: startH * 60, EndMinute: endH * 60}
	}

	t.Run("full day with one busy hour", func(t *testing.T) {
		// 09:00-17:00, 60-minute service, 30-minute steps, 10:00-11:00 taken.
		busy := []Interval{{Start: at(10, 0), End: at(11, 0)}}
		slots := CandidateSlots(day, []availability.Window{window(9, 17)}, busy, time.Hour, 30*time.Minute, past)

		require.NotEmpty(t, slots)
		assert.Equal(t, at(9, 0), slots[0])
		// 09:30 and 10:30 would run into the busy hour; 10:00 starts inside it.
		assert.NotContains(t, slots, at(9, 30))
		assert.NotContains(t, slots, at(10, 0))
		assert.NotContains(t, slots, at(10, 30))
		assert.Contains(t, slots, at(11, 0))
		// Last start that still fits before 17:00.
		assert.Equal(t, at(16, 0), slots[len(slots)-1])
		assert.Len(t, slots, 12)
	})

	t.Run("no windows means no slots", func(t *testing.T) {
		slots := CandidateSlots(day, nil, nil, time.Hour, 30*time.Minute, past)
		assert.Empty(t, slots)
	})

	t.Run("duration longer than window yields nothing", func(t *testing.T) {
		slots := CandidateSlots(day, []availability.Window{window(9, 10)}, nil, 2*time.Hour, 30*time.Minute, past)
		assert.Empty(t, slots)
	})

	t.Run("duration exactly fills window", func(t *testing.T) {
		slots := CandidateSlots(day, []availability.Window{window(9, 10)}, nil, time.Hour, 30*time.Minute, past)
		assert.Equal(t, []time.Time{at(9, 0)}, slots)
	})

	t.Run("past starts are excluded", func(t *testing.T) {
		now := at(12, 0)
		slots := CandidateSlots(day, []availability.Window{window(9, 17)}, nil, time.Hour, 30*time.Minute, now)
		require.NotEmpty(t, slots)
		assert.Equal(t, at(12, 30), slots[0])
	})

	t.Run("adjacent busy interval does not block", func(t *testing.T) {
		busy := []Interval{{Start: at(10, 0), End: at(11, 0)}}
		slots := CandidateSlots(day, []availability.Window{window(9, 17)}, busy, time.Hour, 60*time.Minute, past)
		assert.Contains(t, slots, at(9, 0))
		assert.Contains(t, slots, at(11, 0))
		assert.NotContains(t, slots, at(10, 0))
	})

	t.Run("multiple windows stay ascending", func(t *testing.T) {
		windows := []availability.Window{window(9, 11), window(14, 16)}
		slots := CandidateSlots(day, windows, nil, time.Hour, 30*time.Minute, past)
		require.NotEmpty(t, slots)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i].After(slots[i-1]))
		}
		assert.NotContains(t, slots, at(12, 0))
	})
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestIntervalOverlaps(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 3, 2, h, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name    string
		a, b    Interval
		overlap bool
	}{
		{"identical", Interval{at(9), at(10)}, Interval{at(9), at(10)}, true},
		{"partial", Interval{at(9), at(11)}, Interval{at(10), at(12)}, true},
		{"contained", Interval{at(9), at(12)}, Interval{at(10), at(11)}, true},
		{"back to back", Interval{at(9), at(10)}, Interval{at(10), at(11)}, false},
		{"disjoint", Interval{at(9), at(10)}, Interval{at(14), at(15)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a))
		})
	}
}

func TestBookingEnd(t *testing.T) {
	b := Booking{
		ScheduledAt:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	}
	assert.Equal(t, time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC), b.End())
}

func TestBookingIsParty(t *testing.T) {
	b := Booking{ProfessionalID: "pro", ClientID: "client"}
	assert.True(t, b.IsParty("pro"))
	assert.True(t, b.IsParty("client"))
	assert.False(t, b.IsParty("stranger"))
}

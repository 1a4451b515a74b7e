package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"17:00", 1020, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"09:60", 0, true},
		{"-1:00", 0, true},
		{"nonsense", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "17:30", FormatClock(1050))
}

func TestValidateDay(t *testing.T) {
	w := func(start, end int) Window {
		return Window{Weekday: 1, StartMinute: start, EndMinute: end}
	}

	t.Run("valid disjoint windows", func(t *testing.T) {
		err := ValidateDay(1, []Window{w(540, 720), w(780, 1020)})
		assert.NoError(t, err)
	})

	t.Run("back to back windows are allowed", func(t *testing.T) {
		err := ValidateDay(1, []Window{w(540, 720), w(720, 1020)})
		assert.NoError(t, err)
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		err := ValidateDay(1, []Window{w(780, 1020), w(540, 720)})
		assert.NoError(t, err)
	})

	t.Run("empty day clears the schedule", func(t *testing.T) {
		assert.NoError(t, ValidateDay(1, nil))
	})

	t.Run("rejects bad weekday", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDay(7, nil), ErrInvalidWeekday)
		assert.ErrorIs(t, ValidateDay(-1, nil), ErrInvalidWeekday)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDay(1, []Window{w(720, 540)}), ErrInvalidWindow)
		assert.ErrorIs(t, ValidateDay(1, []Window{w(540, 540)}), ErrInvalidWindow)
	})

	t.Run("rejects overlapping windows", func(t *testing.T) {
		err := ValidateDay(1, []Window{w(540, 725), w(720, 1020)})
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})
}

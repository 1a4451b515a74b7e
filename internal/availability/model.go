package availability

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/servipro-app/servipro-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("availability window not found")
	ErrInvalidWeekday = apperror.BadRequest("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidWindow  = apperror.BadRequest("window start must be before window end")
	ErrWindowOverlap  = apperror.BadRequest("windows for the same day must not overlap")
	ErrNotOwner       = apperror.New(http.StatusForbidden, "only the professional may edit their availability")
)

// MinutesPerDay bounds wall-clock window times.
const MinutesPerDay = 24 * 60

// Window is one recurring weekly open interval for a professional. Times are
// wall-clock minutes since midnight; the platform runs in a single locale so
// no timezone is attached.
type Window struct {
	ID             string
	ProfessionalID string
	Weekday        int // 0=Sunday .. 6=Saturday
	StartMinute    int
	EndMinute      int
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || h*60+m > MinutesPerDay {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ValidateDay checks the invariants for one day's replacement set: each window
// well-formed, all on the given weekday, and pairwise non-overlapping.
func ValidateDay(weekday int, windows []Window) error {
	if weekday < 0 || weekday > 6 {
		return ErrInvalidWeekday
	}

	for _, w := range windows {
		if w.StartMinute < 0 || w.EndMinute > MinutesPerDay || w.StartMinute >= w.EndMinute {
			return ErrInvalidWindow
		}
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMinute < sorted[j].StartMinute })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartMinute < sorted[i-1].EndMinute {
			return ErrWindowOverlap
		}
	}

	return nil
}

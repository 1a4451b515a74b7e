package booking

import (
	"time"

	"github.com/servipro-app/servipro-backend/internal/availability"
)

// CandidateSlots computes the bookable start times for one calendar day.
//
// day is midnight of the requested date in the platform's location. windows
// are the professional's recurring windows for that weekday; busy are the
// occupied intervals already on the ledger for that day. Candidates step
// through each window at the given granularity, and a start time survives only
// if the full [start, start+duration) interval fits inside the window, does
// not overlap anything busy, and is strictly in the future. The result is
// ascending; a duration longer than every window simply yields nothing.
func CandidateSlots(
	day time.Time,
	windows []availability.Window,
	busy []Interval,
	duration time.Duration,
	granularity time.Duration,
	now time.Time,
) []time.Time {
	var slots []time.Time

	for _, w := range windows {
		windowStart := day.Add(time.Duration(w.StartMinute) * time.Minute)
		windowEnd := day.Add(time.Duration(w.EndMinute) * time.Minute)

		for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(granularity) {
			if !start.After(now) {
				continue
			}

			candidate := Interval{Start: start, End: start.Add(duration)}
			conflict := false
			for _, b := range busy {
				if candidate.Overlaps(b) {
					conflict = true
					break
				}
			}
			if !conflict {
				slots = append(slots, start)
			}
		}
	}

	return slots
}

package notification

import "time"

// Kind enumerates the booking lifecycle events fanned out to parties.
type Kind string

const (
	BookingCreated     Kind = "booking_created"
	BookingConfirmed   Kind = "booking_confirmed"
	BookingCancelled   Kind = "booking_cancelled"
	BookingRescheduled Kind = "booking_rescheduled"
	BookingCompleted   Kind = "booking_completed"
	ReviewSubmitted    Kind = "review_submitted"
)

// Event is emitted once per successful state transition. It always carries the
// booking id and both party ids; the remaining fields are set per kind
// (new time for reschedule, reason for cancel, rating for review).
type Event struct {
	Kind           Kind
	BookingID      string
	ProfessionalID string
	ClientID       string
	ActorID        string

	ScheduledAt *time.Time // set on create, confirm, reschedule (new time)
	OldTime     *time.Time // set on reschedule
	Reason      string     // set on cancel
	Rating      int        // set on review
}

// Recipients returns the parties to notify: the counterpart(s) of the actor.
func (e Event) Recipients() []string {
	var out []string
	if e.ProfessionalID != e.ActorID {
		out = append(out, e.ProfessionalID)
	}
	if e.ClientID != e.ActorID {
		out = append(out, e.ClientID)
	}
	return out
}

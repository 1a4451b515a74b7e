package booking

import (
	"net/http"
	"time"

	"github.com/servipro-app/servipro-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.NotFound("booking not found")
	ErrSlotUnavailable      = apperror.Conflict("time slot already booked")
	ErrInvalidTransition    = apperror.Conflict("booking status does not allow this action")
	ErrStartTimePast        = apperror.BadRequest("cannot book a time in the past")
	ErrSelfBooking          = apperror.BadRequest("professionals cannot book themselves")
	ErrClientRoleRequired   = apperror.BadRequest("only clients may reserve appointments")
	ErrOutsideAvailability  = apperror.BadRequest("requested time is outside the professional's availability")
	ErrServiceInactive      = apperror.BadRequest("service is not active")
	ErrServiceMismatch      = apperror.BadRequest("service does not belong to this professional")
	ErrProfessionalNotFound = apperror.NotFound("professional not found")
	ErrSameTime             = apperror.BadRequest("new time must differ from the current one")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidDate          = apperror.BadRequest("invalid date")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// validTransitions is the booking state machine. Cancellation is only legal
// before work starts; completion requires the booking to have been confirmed.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ActiveStatuses are the statuses whose intervals occupy the ledger. Cancelled
// slots are free again; completed intervals are history.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsActive reports whether the status occupies its time interval in the ledger.
func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// Booking is the central entity. DurationMinutes is a snapshot copied from the
// service at reservation time; later service edits never change it.
type Booking struct {
	ID               string
	ProfessionalID   string
	ProfessionalName string
	ClientID         string
	ClientName       string
	ServiceID        string
	ServiceName      string
	DurationMinutes  int
	ScheduledAt      time.Time
	Status           Status
	Notes            string
	CancelReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// End returns the exclusive end of the booking's occupied interval.
func (b *Booking) End() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Interval returns the booking's occupied half-open interval.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.ScheduledAt, End: b.End()}
}

// IsParty reports whether the given user is one of the booking's two parties.
func (b *Booking) IsParty(userID string) bool {
	return userID == b.ProfessionalID || userID == b.ClientID
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps implements the half-open overlap test: adjacent intervals do not
// conflict.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Reschedule is one audit record of a booking moving to a new time.
type Reschedule struct {
	ID        string
	BookingID string
	ActorID   string
	OldTime   time.Time
	NewTime   time.Time
	Message   string
	CreatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	ProfessionalID string
	ClientID       string
	Status         string
	From           *time.Time // bookings ending after this time
	To             *time.Time // bookings starting before this time
	Page           int
	PageSize       int
}

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/availability"
	"github.com/servipro-app/servipro-backend/internal/catalog"
	"github.com/servipro-app/servipro-backend/internal/notification"
	"github.com/servipro-app/servipro-backend/internal/user"
)

type ReserveRequest struct {
	ProfessionalID string
	ServiceID      string
	ScheduledAt    time.Time
	Notes          string
}

type Service interface {
	// Reserve creates a pending booking if the requested interval is free.
	// Concurrent requests for the same professional are serialized; at most
	// one wins a contested slot.
	Reserve(ctx context.Context, actor auth.Actor, req ReserveRequest) (*Booking, error)

	Confirm(ctx context.Context, actor auth.Actor, id string) (*Booking, error)
	Start(ctx context.Context, actor auth.Actor, id string) (*Booking, error)
	Complete(ctx context.Context, actor auth.Actor, id string) (*Booking, error)
	Cancel(ctx context.Context, actor auth.Actor, id, reason string) (*Booking, error)

	// Reschedule moves a pending or confirmed booking to a new future time.
	// The booking keeps its status; the move is recorded in the audit trail.
	Reschedule(ctx context.Context, actor auth.Actor, id string, newTime time.Time, message string) (*Booking, error)

	UpdateNotes(ctx context.Context, actor auth.Actor, id, notes string) (*Booking, error)

	GetByID(ctx context.Context, actor auth.Actor, id string) (*Booking, error)
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Booking, int, error)
	ListReschedules(ctx context.Context, actor auth.Actor, bookingID string) ([]Reschedule, error)

	// AvailableSlots returns the bookable start times for one service on one
	// calendar day, stepped at the configured granularity.
	AvailableSlots(ctx context.Context, professionalID, serviceID string, day time.Time) ([]time.Time, error)
}

type service struct {
	repo         Repository
	catalog      catalog.Catalog
	availability availability.Service
	users        user.Service
	events       notification.Publisher
	locks        *keyedMutex
	granularity  time.Duration
	now          func() time.Time
}

func NewService(
	repo Repository,
	cat catalog.Catalog,
	avail availability.Service,
	users user.Service,
	events notification.Publisher,
	granularity time.Duration,
) Service {
	return &service{
		repo:         repo,
		catalog:      cat,
		availability: avail,
		users:        users,
		events:       events,
		locks:        newKeyedMutex(),
		granularity:  granularity,
		now:          time.Now,
	}
}

// withinAvailability checks that [start, start+duration) fits entirely inside
// one of the professional's windows for that weekday.
func (s *service) withinAvailability(ctx context.Context, professionalID string, start time.Time, durationMinutes int) error {
	windows, err := s.availability.GetWindows(ctx, professionalID, int(start.Weekday()))
	if err != nil {
		return err
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + durationMinutes
	for _, w := range windows {
		if startMin >= w.StartMinute && endMin <= w.EndMinute {
			return nil
		}
	}
	return ErrOutsideAvailability
}

func (s *service) Reserve(ctx context.Context, actor auth.Actor, req ReserveRequest) (*Booking, error) {
	if actor.ID == req.ProfessionalID {
		return nil, ErrSelfBooking
	}
	if !actor.IsClient() {
		return nil, ErrClientRoleRequired
	}
	if !req.ScheduledAt.After(s.now()) {
		return nil, ErrStartTimePast
	}

	pro, err := s.users.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, ErrProfessionalNotFound
	}
	if pro.Role != auth.RoleProfessional {
		return nil, ErrProfessionalNotFound
	}

	svc, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ProfessionalID != req.ProfessionalID {
		return nil, ErrServiceMismatch
	}
	if !svc.Active {
		return nil, ErrServiceInactive
	}

	if err := s.withinAvailability(ctx, req.ProfessionalID, req.ScheduledAt, svc.DurationMinutes); err != nil {
		return nil, err
	}

	b := &Booking{
		ProfessionalID:  req.ProfessionalID,
		ClientID:        actor.ID,
		ServiceID:       req.ServiceID,
		DurationMinutes: svc.DurationMinutes,
		ScheduledAt:     req.ScheduledAt,
		Status:          StatusPending,
		Notes:           req.Notes,
	}

	// Serialize check-then-insert per professional so only one of several
	// racing requests can pass the overlap check. The database exclusion
	// constraint covers anything this process does not see.
	unlock := s.locks.Lock(req.ProfessionalID)
	defer unlock()

	taken, err := s.repo.HasOverlap(ctx, req.ProfessionalID, b.ScheduledAt, b.End(), "")
	if err != nil {
		return nil, fmt.Errorf("check slot availability failed: %w", err)
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	scheduled := b.ScheduledAt
	s.events.Publish(ctx, notification.Event{
		Kind:           notification.BookingCreated,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
		ScheduledAt:    &scheduled,
	})
	return b, nil
}

// transition loads the booking, checks that the actor may perform the move and
// that the state machine allows it, then persists the new status.
func (s *service) transition(ctx context.Context, actor auth.Actor, id string, target Status, professionalOnly bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	if professionalOnly && actor.ID != b.ProfessionalID {
		return nil, ErrPermissionDenied
	}
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	b.Status = target
	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Confirm(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	b, err := s.transition(ctx, actor, id, StatusConfirmed, true)
	if err != nil {
		return nil, err
	}
	scheduled := b.ScheduledAt
	s.events.Publish(ctx, notification.Event{
		Kind:           notification.BookingConfirmed,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
		ScheduledAt:    &scheduled,
	})
	return b, nil
}

func (s *service) Start(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	return s.transition(ctx, actor, id, StatusInProgress, true)
}

func (s *service) Complete(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	b, err := s.transition(ctx, actor, id, StatusCompleted, true)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, notification.Event{
		Kind:           notification.BookingCompleted,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
	})
	return b, nil
}

func (s *service) Cancel(ctx context.Context, actor auth.Actor, id, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	if !b.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	b.Status = StatusCancelled
	if reason != "" {
		b.CancelReason = &reason
	}
	// Once the row leaves the active statuses its interval stops counting in
	// overlap checks, so the slot is instantly bookable again.
	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, notification.Event{
		Kind:           notification.BookingCancelled,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
		Reason:         reason,
	})
	return b, nil
}

func (s *service) Reschedule(ctx context.Context, actor auth.Actor, id string, newTime time.Time, message string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return nil, ErrInvalidTransition
	}
	if !newTime.After(s.now()) {
		return nil, ErrStartTimePast
	}
	if newTime.Equal(b.ScheduledAt) {
		return nil, ErrSameTime
	}

	if err := s.withinAvailability(ctx, b.ProfessionalID, newTime, b.DurationMinutes); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(b.ProfessionalID)
	defer unlock()

	taken, err := s.repo.HasOverlap(ctx, b.ProfessionalID, newTime, newTime.Add(time.Duration(b.DurationMinutes)*time.Minute), b.ID)
	if err != nil {
		return nil, fmt.Errorf("check slot availability failed: %w", err)
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	oldTime := b.ScheduledAt
	b.ScheduledAt = newTime
	if message != "" {
		if b.Notes != "" {
			b.Notes += "\n"
		}
		b.Notes += message
	}

	if err := s.repo.Reschedule(ctx, b, oldTime, actor.ID, message); err != nil {
		return nil, err
	}

	scheduled := b.ScheduledAt
	s.events.Publish(ctx, notification.Event{
		Kind:           notification.BookingRescheduled,
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ActorID:        actor.ID,
		ScheduledAt:    &scheduled,
		OldTime:        &oldTime,
	})
	return b, nil
}

func (s *service) UpdateNotes(ctx context.Context, actor auth.Actor, id, notes string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	if b.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	b.Notes = notes
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Hide other people's bookings rather than admit they exist.
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]*Booking, int, error) {
	// Scope the listing to the caller's own side of the marketplace.
	if actor.Role == auth.RoleProfessional {
		filter.ProfessionalID = actor.ID
		filter.ClientID = ""
	} else {
		filter.ClientID = actor.ID
		filter.ProfessionalID = ""
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListReschedules(ctx context.Context, actor auth.Actor, bookingID string) ([]Reschedule, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actor.ID) {
		return nil, ErrNotFound
	}
	return s.repo.ListReschedules(ctx, bookingID)
}

func (s *service) AvailableSlots(ctx context.Context, professionalID, serviceID string, day time.Time) ([]time.Time, error) {
	svc, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProfessionalID != professionalID {
		return nil, ErrServiceMismatch
	}
	if !svc.Active {
		return nil, ErrServiceInactive
	}

	windows, err := s.availability.GetWindows(ctx, professionalID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	busy, err := s.repo.ListBusy(ctx, professionalID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	return CandidateSlots(dayStart, windows, busy, duration, s.granularity, s.now()), nil
}

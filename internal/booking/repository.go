package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository uses. It exists so
// repository tests can substitute pgxmock.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus persists a state transition (status, cancel reason, updated_at).
	UpdateStatus(ctx context.Context, b *Booking) error
	UpdateNotes(ctx context.Context, id, notes string) error

	// Reschedule moves the booking and writes its audit record in one
	// transaction; on conflict nothing is changed.
	Reschedule(ctx context.Context, b *Booking, oldTime time.Time, actorID, message string) error
	ListReschedules(ctx context.Context, bookingID string) ([]Reschedule, error)

	// HasOverlap checks whether any active booking for the professional
	// intersects [start, end). excludeBookingID ignores the booking itself
	// during reschedules.
	HasOverlap(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (bool, error)

	// ListBusy returns the active occupied intervals intersecting [from, to),
	// ordered by start time.
	ListBusy(ctx context.Context, professionalID string, from, to time.Time) ([]Interval, error)
}

type pgxRepository struct {
	pool PgxPool
}

func NewPgxRepository(pool PgxPool) Repository {
	return &pgxRepository{pool: pool}
}

// activeStatusStrings is the SQL-facing form of ActiveStatuses.
func activeStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func isExclusionViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("professional_id", "client_id", "service_id", "duration_minutes", "scheduled_at", "status", "notes").
		Values(b.ProfessionalID, b.ClientID, b.ServiceID, b.DurationMinutes, b.ScheduledAt, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		// The exclusion constraint is the database-level double-booking
		// backstop; a violation means the slot was taken.
		if isExclusionViolation(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = `b.id, b.professional_id, p.display_name, b.client_id, c.display_name,
	b.service_id, s.name, b.duration_minutes, b.scheduled_at, b.status, b.notes,
	b.cancel_reason, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var proName, clientName *string
	if err := row.Scan(
		&b.ID, &b.ProfessionalID, &proName, &b.ClientID, &clientName,
		&b.ServiceID, &b.ServiceName, &b.DurationMinutes, &b.ScheduledAt, &b.Status, &b.Notes,
		&b.CancelReason, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if proName != nil {
		b.ProfessionalName = *proName
	}
	if clientName != nil {
		b.ClientName = *clientName
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.users p ON b.professional_id = p.id
		JOIN public.users c ON b.client_id = c.id
		JOIN public.services s ON b.service_id = s.id
		WHERE b.id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.professional_id", "p.display_name", "b.client_id", "c.display_name",
		"b.service_id", "s.name", "b.duration_minutes", "b.scheduled_at", "b.status", "b.notes",
		"b.cancel_reason", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.users p ON b.professional_id = p.id").
		Join("public.users c ON b.client_id = c.id").
		Join("public.services s ON b.service_id = s.id")

	if filter.ProfessionalID != "" {
		query = query.Where(squirrel.Eq{"b.professional_id": filter.ProfessionalID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.scheduled_at": filter.To})
	}

	query = query.OrderBy("b.scheduled_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		var proName, clientName *string
		if err := rows.Scan(
			&b.ID, &b.ProfessionalID, &proName, &b.ClientID, &clientName,
			&b.ServiceID, &b.ServiceName, &b.DurationMinutes, &b.ScheduledAt, &b.Status, &b.Notes,
			&b.CancelReason, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if proName != nil {
			b.ProfessionalName = *proName
		}
		if clientName != nil {
			b.ClientName = *clientName
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("cancel_reason", b.CancelReason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking notes query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking notes failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Reschedule(ctx context.Context, b *Booking, oldTime time.Time, actorID, message string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reschedule failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	updQuery, updArgs, err := psql.Update("public.bookings").
		Set("scheduled_at", b.ScheduledAt).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reschedule update query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, updQuery, updArgs...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("reschedule booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	insQuery, insArgs, err := psql.Insert("public.booking_reschedules").
		Columns("booking_id", "actor_id", "old_time", "new_time", "message").
		Values(b.ID, actorID, oldTime, b.ScheduledAt, message).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reschedule audit query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("insert reschedule audit failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) ListReschedules(ctx context.Context, bookingID string) ([]Reschedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booking_id", "actor_id", "old_time", "new_time", "message", "created_at").
		From("public.booking_reschedules").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reschedules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reschedules failed: %w", err)
	}
	defer rows.Close()

	var result []Reschedule
	for rows.Next() {
		var rec Reschedule
		if err := rows.Scan(&rec.ID, &rec.BookingID, &rec.ActorID, &rec.OldTime, &rec.NewTime, &rec.Message, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reschedule failed: %w", err)
		}
		result = append(result, rec)
	}
	return result, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// Half-open overlap test: scheduled_at < end AND end_time > start,
	// restricted to statuses that occupy the ledger.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"scheduled_at": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	err = r.pool.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListBusy(ctx context.Context, professionalID string, from, to time.Time) ([]Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("scheduled_at", "end_time").
		From("public.bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"scheduled_at": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list busy query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list busy intervals failed: %w", err)
	}
	defer rows.Close()

	var busy []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan busy interval failed: %w", err)
		}
		busy = append(busy, iv)
	}
	return busy, nil
}

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, professionalID string) (Summary, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rev *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "professional_id", "client_id", "rating", "comment").
		Values(rev.BookingID, rev.ProfessionalID, rev.ClientID, rev.Rating, rev.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rev.ID, &rev.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.booking_id", "r.professional_id", "r.client_id", "c.display_name",
		"r.rating", "r.comment", "r.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.reviews r").
		Join("public.users c ON r.client_id = c.id").
		Where(squirrel.Eq{"r.professional_id": filter.ProfessionalID}).
		OrderBy("r.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int
	for rows.Next() {
		var rev Review
		var clientName *string
		if err := rows.Scan(
			&rev.ID, &rev.BookingID, &rev.ProfessionalID, &rev.ClientID, &clientName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		if clientName != nil {
			rev.ClientName = *clientName
		}
		reviews = append(reviews, &rev)
	}
	return reviews, total, nil
}

func (r *pgxRepository) Summarize(ctx context.Context, professionalID string) (Summary, error) {
	query := `SELECT count(*), coalesce(avg(rating), 0)
		FROM public.reviews
		WHERE professional_id = $1`

	var s Summary
	if err := r.pool.QueryRow(ctx, query, professionalID).Scan(&s.Count, &s.AverageRating); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Summary{}, nil
		}
		return Summary{}, fmt.Errorf("summarize reviews failed: %w", err)
	}
	return s, nil
}

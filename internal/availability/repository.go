package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByDay(ctx context.Context, professionalID string, weekday int) ([]Window, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]Window, error)

	// ReplaceDay swaps out all windows for one professional/weekday in a single
	// transaction so readers never observe a half-replaced day.
	ReplaceDay(ctx context.Context, professionalID string, weekday int, windows []Window) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListByDay(ctx context.Context, professionalID string, weekday int) ([]Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "professional_id", "weekday", "start_minute", "end_minute").
		From("public.availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID, "weekday": weekday}).
		OrderBy("start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.ProfessionalID, &w.Weekday, &w.StartMinute, &w.EndMinute); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, w)
	}

	return windows, nil
}

func (r *pgxRepository) ListByProfessional(ctx context.Context, professionalID string) ([]Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "professional_id", "weekday", "start_minute", "end_minute").
		From("public.availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("weekday ASC", "start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.ProfessionalID, &w.Weekday, &w.StartMinute, &w.EndMinute); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, w)
	}

	return windows, nil
}

func (r *pgxRepository) ReplaceDay(ctx context.Context, professionalID string, weekday int, windows []Window) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace day failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	delQuery, delArgs, err := psql.Delete("public.availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID, "weekday": weekday}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete windows query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("delete windows failed: %w", err)
	}

	if len(windows) > 0 {
		ins := psql.Insert("public.availability_windows").
			Columns("professional_id", "weekday", "start_minute", "end_minute")
		for _, w := range windows {
			ins = ins.Values(professionalID, weekday, w.StartMinute, w.EndMinute)
		}
		insQuery, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert windows query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, insQuery, insArgs...); err != nil {
			return fmt.Errorf("insert windows failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

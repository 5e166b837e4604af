package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"coilapi/internal/database"
	"coilapi/internal/model"
	"coilapi/internal/repository"
)

var newID = uuid.New

const coilColumns = `coil_id, length, weight, created_at, deleted_at`

// CoilPostgres is a PostgreSQL implementation of repository.CoilRepository.
// It uses parameterized queries against whatever session handle it is given.
type CoilPostgres struct {
	loc *time.Location
}

// NewCoilPostgres creates a repository that groups statistics by calendar
// day in loc. A nil loc means UTC.
func NewCoilPostgres(loc *time.Location) *CoilPostgres {
	if loc == nil {
		loc = time.UTC
	}
	return &CoilPostgres{loc: loc}
}

var _ repository.CoilRepository = (*CoilPostgres)(nil)

// GetCoilByID fetches a single coil by its ID.
func (r *CoilPostgres) GetCoilByID(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error) {
	const q = `SELECT ` + coilColumns + ` FROM coils WHERE coil_id = $1`

	c, err := scanCoil(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get coil: %w", err)
	}
	return c, nil
}

// RegisterNewCoil validates in, inserts it under a fresh ID and returns the stored row.
func (r *CoilPostgres) RegisterNewCoil(ctx context.Context, tx database.DBTX, in model.NewCoil) (*model.Coil, error) {
	if err := repository.ValidateNewCoil(in); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO coils (` + coilColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + coilColumns

	c, err := scanCoil(tx.QueryRowContext(ctx, q,
		newID(),
		in.Length,
		in.Weight,
		in.CreatedAt,
		nullTime(in.DeletedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("insert coil: %w", err)
	}
	return c, nil
}

// UpdateCoil locks the row, validates the patched record and writes only the supplied columns.
func (r *CoilPostgres) UpdateCoil(ctx context.Context, tx database.DBTX, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error) {
	const qLock = `SELECT ` + coilColumns + ` FROM coils WHERE coil_id = $1 FOR UPDATE`

	current, err := scanCoil(tx.QueryRowContext(ctx, qLock, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("lock coil: %w", err)
	}

	if err := repository.ValidateCoil(patch.Apply(*current)); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	set := &clauseBuilder{args: []any{id}}
	if v, ok := patch.Length.Get(); ok {
		set.add("length = $%d", v)
	}
	if v, ok := patch.Weight.Get(); ok {
		set.add("weight = $%d", v)
	}
	if v, ok := patch.CreatedAt.Get(); ok {
		set.add("created_at = $%d", v)
	}
	if v, ok := patch.DeletedAt.Get(); ok {
		set.add("deleted_at = $%d", nullTime(v))
	}

	q := `UPDATE coils SET ` + set.join(", ") + ` WHERE coil_id = $1 RETURNING ` + coilColumns

	updated, err := scanCoil(tx.QueryRowContext(ctx, q, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update coil: %w", err)
	}
	return updated, nil
}

// DeleteCoil removes the row and returns it as it was before deletion.
func (r *CoilPostgres) DeleteCoil(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error) {
	const q = `DELETE FROM coils WHERE coil_id = $1 RETURNING ` + coilColumns

	c, err := scanCoil(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("delete coil: %w", err)
	}
	return c, nil
}

// GetAllCoils lists coils matching every supplied predicate.
func (r *CoilPostgres) GetAllCoils(ctx context.Context, tx database.DBTX, f model.CoilFilter) ([]model.Coil, error) {
	where := &clauseBuilder{}
	if f.ID != nil {
		where.add("coil_id = $%d", *f.ID)
	}
	addRange(where, "weight", f.Weight)
	addRange(where, "length", f.Length)
	addRange(where, "created_at", f.CreatedAt)
	addRange(where, "deleted_at", f.DeletedAt)

	q := `SELECT ` + coilColumns + ` FROM coils` + where.where() + ` ORDER BY created_at, coil_id`

	rows, err := tx.QueryContext(ctx, q, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list coils: %w", err)
	}
	defer rows.Close()

	items := make([]model.Coil, 0)
	for rows.Next() {
		c, err := scanCoil(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coil: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list coils: %w", err)
	}

	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return items, nil
}

// GetCoilStats aggregates the coils inside window with one summary query
// and one per-day query.
func (r *CoilPostgres) GetCoilStats(ctx context.Context, tx database.DBTX, window model.StatsWindow) (*model.CoilStats, error) {
	where := &clauseBuilder{}
	if window.CreatedAtGte != nil {
		where.add("created_at >= $%d", *window.CreatedAtGte)
	}
	if window.DeletedAtLte != nil {
		where.add("deleted_at <= $%d", *window.DeletedAtLte)
	}

	qSummary := `
		SELECT
			COUNT(*),
			COUNT(deleted_at),
			AVG(length),
			AVG(weight),
			MAX(length),
			MIN(length),
			MAX(weight),
			MIN(weight),
			COALESCE(SUM(weight), 0),
			MAX(EXTRACT(EPOCH FROM (deleted_at - created_at)))::float8,
			MIN(EXTRACT(EPOCH FROM (deleted_at - created_at)))::float8
		FROM coils` + where.where()

	var (
		stats                    model.CoilStats
		avgLength, avgWeight     sql.NullFloat64
		maxLength, minLength     sql.NullFloat64
		maxWeight, minWeight     sql.NullFloat64
		maxDuration, minDuration sql.NullFloat64
	)
	err := tx.QueryRowContext(ctx, qSummary, where.args...).Scan(
		&stats.TotalAdded,
		&stats.TotalRemoved,
		&avgLength,
		&avgWeight,
		&maxLength,
		&minLength,
		&maxWeight,
		&minWeight,
		&stats.TotalWeight,
		&maxDuration,
		&minDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("coil stats: %w", err)
	}
	if stats.TotalAdded == 0 {
		return nil, repository.ErrNoCoilsInPeriod
	}

	stats.AvgLength = avgLength.Float64
	stats.AvgWeight = avgWeight.Float64
	stats.MaxLength = maxLength.Float64
	stats.MinLength = minLength.Float64
	stats.MaxWeight = maxWeight.Float64
	stats.MinWeight = minWeight.Float64
	stats.MaxDuration = nullFloat(maxDuration)
	stats.MinDuration = nullFloat(minDuration)

	days, err := r.dayTotals(ctx, tx, where)
	if err != nil {
		return nil, err
	}
	ext := repository.SummarizeDays(days)
	stats.MaxCountDay = ext.MaxCountDay
	stats.MinCountDay = ext.MinCountDay
	stats.MaxWeightDay = ext.MaxWeightDay
	stats.MinWeightDay = ext.MinWeightDay

	return &stats, nil
}

func (r *CoilPostgres) dayTotals(ctx context.Context, tx database.DBTX, where *clauseBuilder) ([]model.DayTotal, error) {
	args := append(append([]any{}, where.args...), r.loc.String())
	tz := len(args)

	q := fmt.Sprintf(`
		SELECT (created_at AT TIME ZONE $%d)::date AS day, COUNT(*), SUM(weight)
		FROM coils%s
		GROUP BY 1
		ORDER BY 1`, tz, where.where())

	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("coil day totals: %w", err)
	}
	defer rows.Close()

	var days []model.DayTotal
	for rows.Next() {
		var d model.DayTotal
		if err := rows.Scan(&d.Day, &d.Count, &d.Weight); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("coil day totals: %w", err)
	}
	return days, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoil(row rowScanner) (*model.Coil, error) {
	var (
		c       model.Coil
		deleted sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.Length, &c.Weight, &c.CreatedAt, &deleted); err != nil {
		return nil, err
	}
	if deleted.Valid {
		t := deleted.Time
		c.DeletedAt = &t
	}
	return &c, nil
}

// clauseBuilder accumulates "column op $n" fragments with positional args.
type clauseBuilder struct {
	parts []string
	args  []any
}

func (b *clauseBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.parts = append(b.parts, fmt.Sprintf(format, len(b.args)))
}

func (b *clauseBuilder) join(sep string) string {
	return strings.Join(b.parts, sep)
}

func (b *clauseBuilder) where() string {
	if len(b.parts) == 0 {
		return ""
	}
	return " WHERE " + b.join(" AND ")
}

func addRange[T any](b *clauseBuilder, column string, r model.Range[T]) {
	if r.Gte != nil {
		b.add(column+" >= $%d", *r.Gte)
	}
	if r.Lte != nil {
		b.add(column+" <= $%d", *r.Lte)
	}
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

package plans

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("plans: not found")

// Default reference plans, matching the frontend catalog.
var defaults = []Plan{
	{ID: "monthly", Label: "Bulanan", Duration: "1 Bulan", DurationMonths: 1, PriceInCents: 9000000},
	{ID: "quarterly", Label: "Triwulan", Duration: "3 Bulan", DurationMonths: 3, PriceInCents: 25000000},
	{ID: "semiannual", Label: "Semester", Duration: "6 Bulan", DurationMonths: 6, PriceInCents: 55000000},
	{ID: "annual", Label: "Tahunan", Duration: "1 Tahun", DurationMonths: 12, PriceInCents: 75000000},
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) ListActive(ctx context.Context) ([]Plan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, label, duration, duration_months, price_in_cents, is_active, created_at
		FROM membership_plans
		WHERE is_active = TRUE
		ORDER BY duration_months
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Label, &p.Duration, &p.DurationMonths, &p.PriceInCents, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Plan, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, label, duration, duration_months, price_in_cents, is_active, created_at
		FROM membership_plans WHERE id = $1
	`, id)
	var p Plan
	if err := row.Scan(&p.ID, &p.Label, &p.Duration, &p.DurationMonths, &p.PriceInCents, &p.IsActive, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SeedDefaults inserts the reference plans that are not present yet.
// Safe to run on every boot.
func (r *Repo) SeedDefaults(ctx context.Context) error {
	for _, p := range defaults {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO membership_plans (id, label, duration, duration_months, price_in_cents, is_active)
			VALUES ($1,$2,$3,$4,$5,TRUE)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Label, p.Duration, p.DurationMonths, p.PriceInCents)
		if err != nil {
			return err
		}
	}
	return nil
}

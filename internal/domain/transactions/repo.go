package transactions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("transactions: not found")

const txColumns = `id, member_id, type, plan_id, amount_in_cents, transfer_date,
	transfer_proof_url, status, verified_at, COALESCE(verified_by,''), created_at`

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func scanTx(row pgx.Row, t *Transaction) error {
	return row.Scan(
		&t.ID, &t.MemberID, &t.Type, &t.PlanID, &t.AmountInCents, &t.TransferDate,
		&t.TransferProofURL, &t.Status, &t.VerifiedAt, &t.VerifiedBy, &t.CreatedAt,
	)
}

// Verify stamps the transaction as verified. Calling it on an already
// resolved transaction overwrites the stamp; there is no terminal-state guard
// on the ledger itself.
func (r *Repo) Verify(ctx context.Context, id, verifierID string) (*Transaction, error) {
	return r.resolve(ctx, id, verifierID, StatusVerified)
}

// Reject stamps the transaction as rejected.
func (r *Repo) Reject(ctx context.Context, id, verifierID string) (*Transaction, error) {
	return r.resolve(ctx, id, verifierID, StatusRejected)
}

func (r *Repo) resolve(ctx context.Context, id, verifierID string, status Status) (*Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET status = $2, verified_by = $3, verified_at = now()
		WHERE id = $1
		RETURNING `+txColumns, id, status, verifierID)
	var t Transaction
	if err := scanTx(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByMember returns the member's payment history newest-first, each row
// joined with its plan.
func (r *Repo) ListByMember(ctx context.Context, memberID string) ([]WithPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.member_id, t.type, t.plan_id, t.amount_in_cents, t.transfer_date,
			t.transfer_proof_url, t.status, t.verified_at, COALESCE(t.verified_by,''), t.created_at,
			p.id, p.label, p.duration, p.duration_months, p.price_in_cents, p.is_active, p.created_at
		FROM transactions t
		JOIN membership_plans p ON p.id = t.plan_id
		WHERE t.member_id = $1
		ORDER BY t.created_at DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WithPlan, 0, 8)
	for rows.Next() {
		var w WithPlan
		err := rows.Scan(
			&w.ID, &w.MemberID, &w.Type, &w.PlanID, &w.AmountInCents, &w.TransferDate,
			&w.TransferProofURL, &w.Status, &w.VerifiedAt, &w.VerifiedBy, &w.CreatedAt,
			&w.Plan.ID, &w.Plan.Label, &w.Plan.Duration, &w.Plan.DurationMonths,
			&w.Plan.PriceInCents, &w.Plan.IsActive, &w.Plan.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

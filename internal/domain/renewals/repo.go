package renewals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

var (
	ErrNotFound         = errors.New("renewals: not found")
	ErrAlreadyProcessed = errors.New("renewals: request already processed")
	ErrPlanNotFound     = errors.New("renewals: requested plan not found")
)

const renewalColumns = `id, member_id, requested_plan_id, transfer_date,
	transfer_proof_url, status, COALESCE(processed_by,''), processed_at, created_at`

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func scanRequest(row pgx.Row, rr *RenewalRequest) error {
	return row.Scan(
		&rr.ID, &rr.MemberID, &rr.RequestedPlanID, &rr.TransferDate,
		&rr.TransferProofURL, &rr.Status, &rr.ProcessedBy, &rr.ProcessedAt, &rr.CreatedAt,
	)
}

// Submit inserts a pending request. Multiple pending requests per member are
// allowed; the admin queue resolves them one by one.
func (r *Repo) Submit(ctx context.Context, in SubmitInput) (*RenewalRequest, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO renewal_requests (id, member_id, requested_plan_id, transfer_date, transfer_proof_url, status)
		VALUES ($1,$2,$3,$4,$5,'pending')
		RETURNING `+renewalColumns,
		uuid.NewString(), in.MemberID, in.RequestedPlanID, in.TransferDate, in.TransferProofURL,
	)
	var rr RenewalRequest
	if err := scanRequest(row, &rr); err != nil {
		return nil, err
	}
	return &rr, nil
}

// ListPending returns the open queue newest-first, joined with member and plan.
func (r *Repo) ListPending(ctx context.Context) ([]WithDetails, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.member_id, r.requested_plan_id, r.transfer_date,
			r.transfer_proof_url, r.status, COALESCE(r.processed_by,''), r.processed_at, r.created_at,
			m.id, m.name, m.email, m.dealer_name, m.active_until, m.status,
			p.id, p.label, p.duration, p.duration_months, p.price_in_cents, p.is_active, p.created_at
		FROM renewal_requests r
		JOIN members m ON m.id = r.member_id
		JOIN membership_plans p ON p.id = r.requested_plan_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WithDetails, 0, 8)
	for rows.Next() {
		var w WithDetails
		err := rows.Scan(
			&w.ID, &w.MemberID, &w.RequestedPlanID, &w.TransferDate,
			&w.TransferProofURL, &w.Status, &w.ProcessedBy, &w.ProcessedAt, &w.CreatedAt,
			&w.Member.ID, &w.Member.Name, &w.Member.Email, &w.Member.DealerName,
			&w.Member.ActiveUntil, &w.Member.Status,
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

// Approve closes the request and applies its effects in one database
// transaction: the request is marked approved, the member gets the new expiry,
// plan and active status, and a pre-verified renewal transaction is inserted.
// The status flip is a conditional update keyed on status='pending'; a
// concurrent approver loses the race and gets ErrAlreadyProcessed instead of
// double-applying the extension.
func (r *Repo) Approve(ctx context.Context, id, adminID string) (time.Time, error) {
	var zero time.Time

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		status       Status
		memberID     string
		planID       string
		transferDate time.Time
		proofURL     string
	)
	err = tx.QueryRow(ctx, `
		SELECT status, member_id, requested_plan_id, transfer_date, transfer_proof_url
		FROM renewal_requests WHERE id = $1
	`, id).Scan(&status, &memberID, &planID, &transferDate, &proofURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	if status != StatusPending {
		return zero, ErrAlreadyProcessed
	}

	var durationMonths, priceInCents int
	err = tx.QueryRow(ctx,
		`SELECT duration_months, price_in_cents FROM membership_plans WHERE id = $1`,
		planID,
	).Scan(&durationMonths, &priceInCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
		}
		return zero, err
	}

	var activeUntil time.Time
	err = tx.QueryRow(ctx, `SELECT active_until FROM members WHERE id = $1`, memberID).
		Scan(&activeUntil)
	if err != nil {
		return zero, err
	}

	base := BaseDate(time.Now(), activeUntil, transferDate)
	newActiveUntil := plans.ExpiryFrom(base, durationMonths)

	tag, err := tx.Exec(ctx, `
		UPDATE renewal_requests
		SET status = 'approved', processed_by = $2, processed_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id, adminID)
	if err != nil {
		return zero, err
	}
	if tag.RowsAffected() == 0 {
		return zero, ErrAlreadyProcessed
	}

	_, err = tx.Exec(ctx, `
		UPDATE members
		SET active_until = $2, membership_plan_id = $3, status = 'active', updated_at = now()
		WHERE id = $1
	`, memberID, newActiveUntil, planID)
	if err != nil {
		return zero, err
	}

	// Approval implies payment verification, unlike registration which
	// starts pending.
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, member_id, type, plan_id, amount_in_cents,
			transfer_date, transfer_proof_url, status, verified_at, verified_by)
		VALUES ($1,$2,'renewal',$3,$4,$5,$6,'verified',now(),$7)
	`, uuid.NewString(), memberID, planID, priceInCents, transferDate, proofURL, adminID)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return newActiveUntil, nil
}

// Reject closes the request without touching the member.
func (r *Repo) Reject(ctx context.Context, id, adminID string) (*RenewalRequest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE renewal_requests
		SET status = 'rejected', processed_by = $2, processed_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+renewalColumns, id, adminID)
	var rr RenewalRequest
	if err := scanRequest(row, &rr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.rejectMiss(ctx, id)
		}
		return nil, err
	}
	return &rr, nil
}

// rejectMiss distinguishes a missing request from one already processed.
func (r *Repo) rejectMiss(ctx context.Context, id string) error {
	var status Status
	err := r.pool.QueryRow(ctx, `SELECT status FROM renewal_requests WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyProcessed
}

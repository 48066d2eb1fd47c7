package members

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awass-id/awass-backend/internal/domain/plans"
)

var (
	ErrNotFound     = errors.New("members: not found")
	ErrPlanNotFound = errors.New("members: membership plan not found")
	ErrEmailTaken   = errors.New("members: email already registered")
)

const memberColumns = `id, member_type, name, email, COALESCE(avatar_url,''), ahass_number,
	COALESCE(dealer_code,''), dealer_name, dealer_city, pic_phone_number,
	COALESCE(membership_plan_id,''), active_until, status, joined_at, created_at, updated_at`

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func scanMember(row pgx.Row, m *Member) error {
	return row.Scan(
		&m.ID, &m.MemberType, &m.Name, &m.Email, &m.AvatarURL, &m.AhassNumber,
		&m.DealerCode, &m.DealerName, &m.DealerCity, &m.PICPhoneNumber,
		&m.MembershipPlanID, &m.ActiveUntil, &m.Status, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
	)
}

// Register creates the member together with its initial registration
// transaction in one database transaction: either both rows land or neither.
// The plan price is snapshotted into the transaction at creation time.
func (r *Repo) Register(ctx context.Context, in CreateInput) (*Member, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var durationMonths, priceInCents int
	err = tx.QueryRow(ctx,
		`SELECT duration_months, price_in_cents FROM membership_plans WHERE id = $1`,
		in.MembershipPlanID,
	).Scan(&durationMonths, &priceInCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, in.MembershipPlanID)
		}
		return nil, err
	}

	activeUntil := plans.ExpiryFrom(in.TransferDate, durationMonths)
	memberID := uuid.NewString()
	avatarURL := fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=0ea5e9&color=fff",
		url.QueryEscape(in.Name),
	)

	var m Member
	row := tx.QueryRow(ctx, `
		INSERT INTO members (id, member_type, name, email, avatar_url, ahass_number,
			dealer_code, dealer_name, dealer_city, pic_phone_number,
			membership_plan_id, active_until, status)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9,$10,$11,$12,'pending')
		RETURNING `+memberColumns,
		memberID, in.MemberType, in.Name, in.Email, avatarURL, in.AhassNumber,
		in.DealerCode, in.DealerName, in.DealerCity, in.PICPhoneNumber,
		in.MembershipPlanID, activeUntil,
	)
	if err := scanMember(row, &m); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, member_id, type, plan_id, amount_in_cents,
			transfer_date, transfer_proof_url, status)
		VALUES ($1,$2,'registration',$3,$4,$5,$6,'pending')
	`, uuid.NewString(), memberID, in.MembershipPlanID, priceInCents, in.TransferDate, in.TransferProofURL)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*WithPlan, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT m.id, m.member_type, m.name, m.email, COALESCE(m.avatar_url,''), m.ahass_number,
			COALESCE(m.dealer_code,''), m.dealer_name, m.dealer_city, m.pic_phone_number,
			COALESCE(m.membership_plan_id,''), m.active_until, m.status, m.joined_at, m.created_at, m.updated_at,
			p.id, p.label, p.duration, p.duration_months, p.price_in_cents, p.is_active, p.created_at
		FROM members m
		LEFT JOIN membership_plans p ON p.id = m.membership_plan_id
		WHERE m.id = $1
	`, id)

	var out WithPlan
	var p nullablePlan
	err := row.Scan(
		&out.ID, &out.MemberType, &out.Name, &out.Email, &out.AvatarURL, &out.AhassNumber,
		&out.DealerCode, &out.DealerName, &out.DealerCity, &out.PICPhoneNumber,
		&out.MembershipPlanID, &out.ActiveUntil, &out.Status, &out.JoinedAt, &out.CreatedAt, &out.UpdatedAt,
		&p.ID, &p.Label, &p.Duration, &p.DurationMonths, &p.PriceInCents, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out.Plan = p.toPlan()
	return &out, nil
}

// Activate flips the member to active regardless of transaction state.
// Verifying the payment proof is a separate administrative action.
func (r *Repo) Activate(ctx context.Context, id string) (*Member, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE members SET status = 'active', updated_at = now()
		WHERE id = $1
		RETURNING `+memberColumns, id)
	var m Member
	if err := scanMember(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, id string, in UpdateInput) (*Member, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE members SET
			name             = COALESCE($2, name),
			email            = COALESCE($3, email),
			ahass_number     = COALESCE($4, ahass_number),
			dealer_code      = COALESCE($5, dealer_code),
			dealer_name      = COALESCE($6, dealer_name),
			dealer_city      = COALESCE($7, dealer_city),
			pic_phone_number = COALESCE($8, pic_phone_number),
			status           = COALESCE($9, status),
			updated_at       = now()
		WHERE id = $1
		RETURNING `+memberColumns,
		id, in.Name, in.Email, in.AhassNumber, in.DealerCode,
		in.DealerName, in.DealerCity, in.PICPhoneNumber, in.Status,
	)
	var m Member
	if err := scanMember(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &m, nil
}

// List filters and paginates members, newest first, each joined with its plan.
// The "active" filter requires stored status active AND an unexpired date;
// "expired" is purely date-derived (active_until < CURRENT_DATE), so a member
// whose stored status is still active can show up as expired here.
func (r *Repo) List(ctx context.Context, f Filters) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}

	where, args := buildWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM members m`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT m.id, m.member_type, m.name, m.email, COALESCE(m.avatar_url,''), m.ahass_number,
			COALESCE(m.dealer_code,''), m.dealer_name, m.dealer_city, m.pic_phone_number,
			COALESCE(m.membership_plan_id,''), m.active_until, m.status, m.joined_at, m.created_at, m.updated_at,
			p.id, p.label, p.duration, p.duration_months, p.price_in_cents, p.is_active, p.created_at
		FROM members m
		LEFT JOIN membership_plans p ON p.id = m.membership_plan_id` + where + fmt.Sprintf(`
		ORDER BY m.created_at DESC
		LIMIT %d OFFSET %d`, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make([]WithPlan, 0, f.Limit)
	for rows.Next() {
		var out WithPlan
		var p nullablePlan
		err := rows.Scan(
			&out.ID, &out.MemberType, &out.Name, &out.Email, &out.AvatarURL, &out.AhassNumber,
			&out.DealerCode, &out.DealerName, &out.DealerCity, &out.PICPhoneNumber,
			&out.MembershipPlanID, &out.ActiveUntil, &out.Status, &out.JoinedAt, &out.CreatedAt, &out.UpdatedAt,
			&p.ID, &p.Label, &p.Duration, &p.DurationMonths, &p.PriceInCents, &p.IsActive, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out.Plan = p.toPlan()
		data = append(data, out)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Page{
		Data:       data,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: TotalPages(total, f.Limit),
	}, nil
}

func buildWhere(f Filters) (string, []any) {
	var conds []string
	var args []any

	switch f.Status {
	case "active":
		conds = append(conds, "m.status = 'active'", "m.active_until >= CURRENT_DATE")
	case "expired":
		conds = append(conds, "m.active_until < CURRENT_DATE")
	case "pending":
		conds = append(conds, "m.status = 'pending'")
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(m.name ILIKE $%[1]d OR m.dealer_code ILIKE $%[1]d OR m.dealer_name ILIKE $%[1]d OR m.ahass_number ILIKE $%[1]d)", n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// SweepExpired marks lapsed active members as expired. Members already
// expired, pending or rejected are untouched; running it twice is a no-op.
func (r *Repo) SweepExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE members SET status = 'expired', updated_at = now()
		WHERE status = 'active' AND active_until < CURRENT_DATE
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Stats returns the dashboard counters. Active/expired follow the same
// date-derived rules as List.
func (r *Repo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'active' AND active_until >= CURRENT_DATE),
			count(*) FILTER (WHERE active_until < CURRENT_DATE),
			count(*) FILTER (WHERE status = 'pending')
		FROM members
	`).Scan(&s.Total, &s.Active, &s.Expired, &s.Pending)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// nullablePlan scans the LEFT JOIN side of a member row.
type nullablePlan struct {
	ID             *string
	Label          *string
	Duration       *string
	DurationMonths *int
	PriceInCents   *int
	IsActive       *bool
	CreatedAt      *time.Time
}

func (p nullablePlan) toPlan() *plans.Plan {
	if p.ID == nil {
		return nil
	}
	return &plans.Plan{
		ID:             *p.ID,
		Label:          *p.Label,
		Duration:       *p.Duration,
		DurationMonths: *p.DurationMonths,
		PriceInCents:   *p.PriceInCents,
		IsActive:       *p.IsActive,
		CreatedAt:      *p.CreatedAt,
	}
}

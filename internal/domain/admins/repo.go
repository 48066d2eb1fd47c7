package admins

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidPIN = errors.New("admins: invalid pin")
	ErrExists     = errors.New("admins: admin already seeded")
)

// HashPIN hashes an access PIN for storage and lookup.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// VerifyPIN resolves a PIN to the admin that owns it.
func (r *Repo) VerifyPIN(ctx context.Context, pin string) (*Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, role, created_at FROM admins WHERE pin_hash = $1`, HashPIN(pin))
	var a Admin
	if err := row.Scan(&a.ID, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidPIN
		}
		return nil, err
	}
	return &a, nil
}

// SeedPIN creates the first super admin. Fails once any admin exists.
func (r *Repo) SeedPIN(ctx context.Context, pin string) (*Admin, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins)`).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrExists
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (id, pin_hash, role) VALUES ($1,$2,'super_admin')
		RETURNING id, role, created_at
	`, uuid.NewString(), HashPIN(pin))
	var a Admin
	if err := row.Scan(&a.ID, &a.Role, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

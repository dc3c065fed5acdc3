package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandrabharti/restaurant-api/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id int64) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminCols = `id, name, email, password_hash, role, created_at, updated_at`

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*domain.Admin, error) {
	const q = `
		INSERT INTO admins (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + adminCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.pool.QueryRow(ctx, q, name, email, passwordHash, role))
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE lower(email) = lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.pool.QueryRow(ctx, q, email))
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.pool.QueryRow(ctx, q, id))
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM admins`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const q = `UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandrabharti/restaurant-api/internal/domain"
)

type MenuRepository interface {
	Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	Update(ctx context.Context, id int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type menuRepository struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

const menuCols = `id, name, description, category, price, price_half, price_full,
image, is_available, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.PriceHalf, &m.PriceFull,
		&m.Image, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuRepository) Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItem, error) {
	const q = `
		INSERT INTO menu_items (name, description, category, price, price_half, price_full, image, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING ` + menuCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanMenuItem(r.pool.QueryRow(ctx, q,
		req.Name, req.Description, req.Category, req.Price, req.PriceHalf, req.PriceFull, req.Image,
	))
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	const q = `SELECT ` + menuCols + ` FROM menu_items WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanMenuItem(r.pool.QueryRow(ctx, q, id))
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	const q = `SELECT ` + menuCols + ` FROM menu_items ORDER BY category, name`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMenuItems(rows)
}

func (r *menuRepository) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	const q = `
		SELECT ` + menuCols + `
		FROM menu_items
		WHERE category = $1 AND is_available = true
		ORDER BY name`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMenuItems(rows)
}

func collectMenuItems(rows pgx.Rows) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.PriceHalf, &m.PriceFull,
			&m.Image, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *menuRepository) Update(ctx context.Context, id int64, req *domain.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	const q = `
		UPDATE menu_items
		SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			price = COALESCE($5, price),
			price_half = COALESCE($6, price_half),
			price_full = COALESCE($7, price_full),
			image = COALESCE($8, image),
			is_available = COALESCE($9, is_available),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + menuCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanMenuItem(r.pool.QueryRow(ctx, q, id,
		req.Name, req.Description, req.Category, req.Price, req.PriceHalf, req.PriceFull,
		req.Image, req.IsAvailable,
	))
}

func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM menu_items WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

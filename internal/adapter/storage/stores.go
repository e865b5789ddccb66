package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

var _ port.StoresRepository = (*StoresRepository)(nil)

type StoresRepository struct {
	sqldb sqldb
}

func NewStoresRepository(sqldb sqldb) StoresRepository {
	return StoresRepository{sqldb}
}

const storeColumns = `
	id, name, slug, description, owner, email, phone,
	instagram, address, color, logo, catalog, created_at`

func (r StoresRepository) SaveStore(
	ctx context.Context, v *domain.Store,
) error {
	const op = "StoresRepository.SaveStore"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO stores (
			name, slug, description, owner, email, phone,
			instagram, address, color, logo, catalog
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		v.Name, v.Slug, v.Description, v.Owner, v.Email, v.Phone,
		v.Instagram, v.Address, v.Color, v.Logo, v.Catalog,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, wrapConstraint(err))
	}
	return nil
}

func (r StoresRepository) StoreBySlug(
	ctx context.Context, slug string,
) (domain.Store, error) {
	const op = "StoresRepository.StoreBySlug"

	query := `SELECT` + storeColumns + ` FROM stores WHERE slug = $1;`
	return r.readStore(ctx, op, query, slug)
}

func (r StoresRepository) StoreByID(
	ctx context.Context, id int64,
) (domain.Store, error) {
	const op = "StoresRepository.StoreByID"

	query := `SELECT` + storeColumns + ` FROM stores WHERE id = $1;`
	return r.readStore(ctx, op, query, id)
}

func (r StoresRepository) readStore(
	ctx context.Context, op, query string, arg any,
) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("%s: %w", op, err)
	}

	var v domain.Store
	err := r.sqldb.QueryRowContext(ctx, query, arg).Scan(
		&v.ID, &v.Name, &v.Slug, &v.Description, &v.Owner, &v.Email,
		&v.Phone, &v.Instagram, &v.Address, &v.Color, &v.Logo,
		&v.Catalog, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Store{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Store{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r StoresRepository) Stores(ctx context.Context) ([]domain.Store, error) {
	const op = "StoresRepository.Stores"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + storeColumns + `
		FROM stores ORDER BY created_at DESC, id DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Store
	for rows.Next() {
		var v domain.Store
		err := rows.Scan(
			&v.ID, &v.Name, &v.Slug, &v.Description, &v.Owner, &v.Email,
			&v.Phone, &v.Instagram, &v.Address, &v.Color, &v.Logo,
			&v.Catalog, &v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r StoresRepository) SlugExists(
	ctx context.Context, slug string,
) (bool, error) {
	const op = "StoresRepository.SlugExists"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT EXISTS (SELECT 1 FROM stores WHERE slug = $1);`

	var exists bool
	err := r.sqldb.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) SaveProduct(
	ctx context.Context, v *domain.Product,
) error {
	const op = "ProductsRepository.SaveProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (name, description, price, related, image, store_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		v.Name, v.Description, v.Price, v.Related, v.Image, v.StoreID,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveProducts inserts the whole batch in one transaction, so a
// mid-loop error discards every row of the run.
func (r ProductsRepository) SaveProducts(
	ctx context.Context, vs []domain.Product,
) (saveErr error) {
	const op = "ProductsRepository.SaveProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if saveErr == nil {
			if err := tx.Commit(); err != nil {
				saveErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (name, description, price, related, image, store_id)
		VALUES ($1, $2, $3, $4, $5, $6);`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		_, err := stmt.ExecContext(ctx,
			v.Name, v.Description, v.Price, v.Related, v.Image, v.StoreID,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

const productJoinQuery = `
	SELECT
		p.id, p.name, p.description, p.price, p.related,
		p.image, p.store_id, p.created_at,
		s.name, s.slug, s.phone, s.instagram
	FROM products p
	JOIN stores s ON s.id = p.store_id`

func (r ProductsRepository) ProductByID(
	ctx context.Context, id int64,
) (domain.ProductWithStore, error) {
	const op = "ProductsRepository.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.ProductWithStore{}, fmt.Errorf("%s: %w", op, err)
	}

	query := productJoinQuery + ` WHERE p.id = $1;`

	var v domain.ProductWithStore
	err := r.sqldb.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.Price, &v.Related,
		&v.Image, &v.StoreID, &v.CreatedAt,
		&v.StoreName, &v.StoreSlug, &v.StorePhone, &v.StoreInstagram,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProductWithStore{}, fmt.Errorf(
				"%s: %w", op, domain.ErrNotFound,
			)
		}
		return domain.ProductWithStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ProductsRepository) ProductsByStore(
	ctx context.Context, storeID int64,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ProductsByStore"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, name, description, price, related, image, store_id, created_at
		FROM products
		WHERE store_id = $1
		ORDER BY created_at DESC, id DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		var v domain.Product
		err := rows.Scan(
			&v.ID, &v.Name, &v.Description, &v.Price, &v.Related,
			&v.Image, &v.StoreID, &v.CreatedAt,
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

func (r ProductsRepository) Products(
	ctx context.Context,
) ([]domain.ProductWithStore, error) {
	const op = "ProductsRepository.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := productJoinQuery + ` ORDER BY p.created_at DESC, p.id DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.ProductWithStore
	for rows.Next() {
		var v domain.ProductWithStore
		err := rows.Scan(
			&v.ID, &v.Name, &v.Description, &v.Price, &v.Related,
			&v.Image, &v.StoreID, &v.CreatedAt,
			&v.StoreName, &v.StoreSlug, &v.StorePhone, &v.StoreInstagram,
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

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, v domain.Product,
) error {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, related = $4, image = $5
		WHERE id = $6;`

	res, err := r.sqldb.ExecContext(ctx, query,
		v.Name, v.Description, v.Price, v.Related, v.Image, v.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

var _ port.LeadsRepository = (*LeadsRepository)(nil)

type LeadsRepository struct {
	sqldb sqldb
}

func NewLeadsRepository(sqldb sqldb) LeadsRepository {
	return LeadsRepository{sqldb}
}

func (r LeadsRepository) SaveLead(
	ctx context.Context, v *domain.Lead,
) error {
	const op = "LeadsRepository.SaveLead"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO leads (product_id, store_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		v.ProductID, v.StoreID, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r LeadsRepository) CountLeadsByStore(
	ctx context.Context, storeID int64,
) (int64, error) {
	const op = "LeadsRepository.CountLeadsByStore"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT COUNT(*) FROM leads WHERE store_id = $1;`

	var n int64
	err := r.sqldb.QueryRowContext(ctx, query, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

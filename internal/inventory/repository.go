package inventory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// Repository defines item data access.
type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_id, name, category, current_stock, cost_price, pond_id
		FROM items
		ORDER BY name, item_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var item Item
		var stock, cost decimal.NullDecimal
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &stock, &cost, &item.PondID); err != nil {
			return nil, err
		}
		item.CurrentStock, _ = money.FromNull(stock)
		var missing bool
		if item.CostPrice, missing = money.FromNull(cost); missing {
			item.MissingAmounts++
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

package payroll

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// Repository defines payroll data access.
type Repository interface {
	ListRuns(ctx context.Context) ([]Run, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT run_id, pay_date, status, total_net, pond_id
		FROM payroll_runs
		ORDER BY pay_date, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var run Run
		var net decimal.NullDecimal
		if err := rows.Scan(&run.ID, &run.PayDate, &run.Status, &net, &run.PondID); err != nil {
			return nil, err
		}
		var missing bool
		if run.TotalNet, missing = money.FromNull(net); missing {
			run.MissingAmounts++
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

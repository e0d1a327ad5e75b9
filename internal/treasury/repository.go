package treasury

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// Repository defines deposit data access.
type Repository interface {
	ListDeposits(ctx context.Context) ([]Deposit, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListDeposits(ctx context.Context) ([]Deposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT deposit_id, bank_account_id, deposit_date, amount, memo, reference
		FROM deposits
		ORDER BY deposit_date, deposit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var deposits []Deposit
	for rows.Next() {
		var d Deposit
		var amount decimal.NullDecimal
		if err := rows.Scan(&d.ID, &d.BankAccountID, &d.Date, &amount, &d.Memo, &d.Reference); err != nil {
			return nil, err
		}
		var missing bool
		if d.Amount, missing = money.FromNull(amount); missing {
			d.MissingAmounts++
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

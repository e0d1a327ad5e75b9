package ap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// Repository defines AP data access.
type Repository interface {
	ListBills(ctx context.Context) ([]Bill, error)
	ListBillPayments(ctx context.Context) ([]BillPayment, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListBills(ctx context.Context) ([]Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT bill_id, number, vendor_id, bill_date, total_amount, open_balance, pond_id
		FROM bills
		ORDER BY bill_date, bill_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var bills []Bill
	for rows.Next() {
		var b Bill
		var total, open decimal.NullDecimal
		if err := rows.Scan(&b.ID, &b.Number, &b.VendorID, &b.Date, &total, &open, &b.PondID); err != nil {
			return nil, err
		}
		var missing bool
		if b.Total, missing = money.FromNull(total); missing {
			b.MissingAmounts++
		}
		if b.OpenBalance, missing = money.FromNull(open); missing {
			b.MissingAmounts++
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *pgRepository) ListBillPayments(ctx context.Context) ([]BillPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT payment_id, vendor_id, bill_id, payment_account_id, payment_date, amount, reference
		FROM bill_payments
		ORDER BY payment_date, payment_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []BillPayment
	for rows.Next() {
		var p BillPayment
		var amount decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.VendorID, &p.BillID, &p.PaymentAccountID, &p.Date, &amount, &p.Reference); err != nil {
			return nil, err
		}
		var missing bool
		if p.Amount, missing = money.FromNull(amount); missing {
			p.MissingAmounts++
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

package ar

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// Repository defines AR data access.
type Repository interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
	ListCustomerPayments(ctx context.Context) ([]CustomerPayment, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) ListInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT invoice_id, number, customer_id, invoice_date, total_amount, open_balance, pond_id
		FROM invoices
		ORDER BY invoice_date, invoice_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	byID := make(map[int64]int)
	for rows.Next() {
		var inv Invoice
		var total, open decimal.NullDecimal
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.Date, &total, &open, &inv.PondID); err != nil {
			return nil, err
		}
		var missing bool
		if inv.Total, missing = money.FromNull(total); missing {
			inv.MissingAmounts++
		}
		if inv.OpenBalance, missing = money.FromNull(open); missing {
			inv.MissingAmounts++
		}
		byID[inv.ID] = len(invoices)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.pool.Query(ctx, `
		SELECT l.line_id, l.invoice_id, l.item_id, i.category, l.quantity, l.rate, l.total_weight, l.pond_id
		FROM invoice_lines l
		JOIN items i ON i.item_id = l.item_id
		ORDER BY l.invoice_id, l.line_id`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var line InvoiceLine
		var qty, rate, weight decimal.NullDecimal
		if err := lineRows.Scan(&line.ID, &line.InvoiceID, &line.ItemID, &line.ItemCategory, &qty, &rate, &weight, &line.PondID); err != nil {
			return nil, err
		}
		line.Quantity, _ = money.FromNull(qty)
		line.Rate, _ = money.FromNull(rate)
		line.TotalWeight, _ = money.FromNull(weight)
		if idx, ok := byID[line.InvoiceID]; ok {
			invoices[idx].Lines = append(invoices[idx].Lines, line)
		}
	}
	return invoices, lineRows.Err()
}

func (r *pgRepository) ListCustomerPayments(ctx context.Context) ([]CustomerPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT payment_id, customer_id, deposit_account_id, payment_date, amount
		FROM customer_payments
		ORDER BY payment_date, payment_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []CustomerPayment
	for rows.Next() {
		var p CustomerPayment
		var amount decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.DepositAccountID, &p.Date, &amount); err != nil {
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

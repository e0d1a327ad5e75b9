package journals

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/httpx"
)

// Repository encapsulates DB operations for journals.
type Repository interface {
	ListLines(ctx context.Context) ([]Line, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, in Entry) (Entry, error)
	InsertLines(ctx context.Context, entryID int64, lines []Line) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListLines(ctx context.Context) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.line_id, l.je_id, l.account_id, e.entry_date, l.debit, l.credit, l.memo, e.source_module
		FROM journal_lines l
		JOIN journal_entries e ON e.je_id = l.je_id
		WHERE e.status = 'POSTED'
		ORDER BY e.entry_date, l.line_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Line
	for rows.Next() {
		var line Line
		var debit, credit decimal.NullDecimal
		if err := rows.Scan(&line.ID, &line.JournalID, &line.AccountID, &line.Date, &debit, &credit, &line.Memo, &line.SourceModule); err != nil {
			return nil, err
		}
		var missing bool
		if line.Debit, missing = money.FromNull(debit); missing {
			line.MissingAmounts++
		}
		if line.Credit, missing = money.FromNull(credit); missing {
			line.MissingAmounts++
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, in Entry) (Entry, error) {
	row := r.tx.QueryRow(ctx, `
		INSERT INTO journal_entries (entry_date, source_module, source_id, memo, status)
		VALUES ($1,$2,$3,$4,'POSTED')
		RETURNING je_id, number, created_at`,
		in.Date, in.SourceModule, in.SourceID, in.Memo)
	entry := in
	entry.Status = StatusPosted
	if err := row.Scan(&entry.ID, &entry.Number, &entry.CreatedAt); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.ConstraintName == "uq_journal_source" {
			return Entry{}, httpx.ErrDuplicate
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *txRepository) InsertLines(ctx context.Context, entryID int64, lines []Line) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `
			INSERT INTO journal_lines (je_id, account_id, debit, credit, memo)
			VALUES ($1,$2,$3,$4,$5)`,
			entryID, line.AccountID, line.Debit, line.Credit, line.Memo); err != nil {
			return err
		}
	}
	return nil
}

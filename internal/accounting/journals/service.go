package journals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
)

var (
	// ErrSameAccount rejects transfers where source and destination match.
	ErrSameAccount = errors.New("journals: transfer accounts must differ")
	// ErrNonPositiveAmount rejects zero or negative transfer amounts.
	ErrNonPositiveAmount = errors.New("journals: transfer amount must be positive")
	// ErrUnknownAccount reports a transfer leg that does not resolve to a
	// chart of accounts entry.
	ErrUnknownAccount = errors.New("journals: unknown account")
)

type AccountSource interface {
	List(ctx context.Context) ([]accounts.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountSource
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, accountSource AccountSource) *Service {
	return &Service{
		repo:     repo,
		accounts: accountSource,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// ListLines returns every posted journal line.
func (s *Service) ListLines(ctx context.Context) ([]Line, error) {
	return s.repo.ListLines(ctx)
}

// PostTransfer records a fund transfer as one balanced journal entry. The
// destination account is debited and the source account credited for the
// full amount; total debits always equal total credits.
func (s *Service) PostTransfer(ctx context.Context, input TransferInput) (Entry, error) {
	if err := s.validate.Struct(input); err != nil {
		return Entry{}, fmt.Errorf("journals: invalid transfer: %w", err)
	}
	if input.FromAccount == input.ToAccount {
		return Entry{}, ErrSameAccount
	}
	if !input.Amount.IsPositive() {
		return Entry{}, ErrNonPositiveAmount
	}

	list, err := s.accounts.List(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("journals: load accounts: %w", err)
	}
	tree, err := accounts.BuildTree(list)
	if err != nil {
		return Entry{}, err
	}
	if tree.Find(input.FromAccount) == nil {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownAccount, input.FromAccount)
	}
	if tree.Find(input.ToAccount) == nil {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownAccount, input.ToAccount)
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	var posted Entry
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		entry, err := tx.InsertEntry(ctx, Entry{
			Date:         date,
			SourceModule: SourceModuleTransfer,
			SourceID:     uuid.New(),
			Memo:         input.Memo,
		})
		if err != nil {
			return err
		}
		lines := []Line{
			{AccountID: input.ToAccount, Date: date, Debit: input.Amount, Memo: input.Memo},
			{AccountID: input.FromAccount, Date: date, Credit: input.Amount, Memo: input.Memo},
		}
		if err := tx.InsertLines(ctx, entry.ID, lines); err != nil {
			return err
		}
		entry.Lines = lines
		posted = entry
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return posted, nil
}

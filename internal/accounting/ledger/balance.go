package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// AccountBalance pairs an account with its rolled-up balance.
type AccountBalance struct {
	Account accounts.Account
	Balance decimal.Decimal
}

// Formatted renders the balance as a display string.
func (b AccountBalance) Formatted() string {
	return money.Format(b.Balance)
}

// Aggregator computes rolled-up account balances over the chart of
// accounts: each account's direct postings plus the sum of every descendant
// balance.
type Aggregator struct {
	accounts AccountSource
	recon    *Reconstructor
}

type AccountSource interface {
	List(ctx context.Context) ([]accounts.Account, error)
}

func NewAggregator(accountSource AccountSource, recon *Reconstructor) *Aggregator {
	return &Aggregator{accounts: accountSource, recon: recon}
}

// BalanceOf returns the rolled-up balance of one account as of the date. A
// zero asOf means no cutoff.
func (a *Aggregator) BalanceOf(ctx context.Context, accountID int64, asOf time.Time) (decimal.Decimal, error) {
	balances, err := a.Balances(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range balances {
		if b.Account.ID == accountID {
			return b.Balance, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %d", ErrAccountNotFound, accountID)
}

// Balances computes the rolled-up balance of every account in one pass.
// Accumulation is pure summation over an iterative post-order walk, so
// re-running with identical inputs always yields identical results.
func (a *Aggregator) Balances(ctx context.Context, asOf time.Time) ([]AccountBalance, error) {
	list, err := a.accounts.List(ctx)
	if err != nil {
		return nil, &SourceFetchError{Source: "accounts", Err: err}
	}
	tree, err := accounts.BuildTree(list)
	if err != nil {
		return nil, err
	}
	return a.TreeBalances(ctx, tree, asOf)
}

// TreeBalances rolls balances up an already-built tree. Sources are fetched
// at most once for the whole walk.
func (a *Aggregator) TreeBalances(ctx context.Context, tree *accounts.Tree, asOf time.Time) ([]AccountBalance, error) {
	src := a.recon.newSourceSet()
	flat := tree.Flatten()

	direct := make(map[int64]decimal.Decimal, len(flat))
	for _, fa := range flat {
		balance, err := a.recon.directBalance(ctx, fa.Account, asOf, src)
		if err != nil {
			return nil, err
		}
		direct[fa.Account.ID] = balance
	}

	// Reversed pre-order visits every child before its parent, which makes
	// the subtree accumulation a single backward sweep instead of a
	// recursive descent.
	subtotal := make(map[int64]decimal.Decimal, len(flat))
	for i := len(flat) - 1; i >= 0; i-- {
		acc := flat[i].Account
		total := direct[acc.ID]
		for _, child := range tree.ChildrenOf(acc.ID) {
			total = total.Add(subtotal[child.Account.ID])
		}
		subtotal[acc.ID] = total
	}

	out := make([]AccountBalance, 0, len(flat))
	for _, fa := range flat {
		out = append(out, AccountBalance{Account: fa.Account, Balance: subtotal[fa.Account.ID]})
	}
	return out, nil
}

// ErrAccountNotFound reports a balance request for an account id absent
// from the chart of accounts.
var ErrAccountNotFound = errors.New("ledger: account not found")

package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
)

// Reconstructor derives ordered, running-balance ledgers for single
// accounts. It never mutates source records.
type Reconstructor struct {
	deposits     DepositSource
	billPayments BillPaymentSource
	invoices     InvoiceSource
	journals     JournalSource
}

func NewReconstructor(deposits DepositSource, billPayments BillPaymentSource, invoices InvoiceSource, journalLines JournalSource) *Reconstructor {
	return &Reconstructor{
		deposits:     deposits,
		billPayments: billPayments,
		invoices:     invoices,
		journals:     journalLines,
	}
}

func (r *Reconstructor) newSourceSet() *sourceSet {
	return &sourceSet{
		deposits:     r.deposits,
		billPayments: r.billPayments,
		invoices:     r.invoices,
		journals:     r.journals,
	}
}

// Reconstruct returns the account's ledger as of the given date. A zero
// asOf means no cutoff. The running balance accumulates oldest-first; the
// returned slice is presented newest-first. An account with no matching
// source records yields an empty ledger, not an error.
func (r *Reconstructor) Reconstruct(ctx context.Context, account accounts.Account, asOf time.Time) ([]Entry, error) {
	return r.reconstruct(ctx, account, asOf, r.newSourceSet())
}

func (r *Reconstructor) reconstruct(ctx context.Context, account accounts.Account, asOf time.Time, src *sourceSet) ([]Entry, error) {
	entries, err := ruleFor(account.Type).collect(ctx, account.ID, src)
	if err != nil {
		return nil, err
	}
	entries = filterAsOf(entries, asOf)

	// Running balance must accumulate chronologically even though the
	// ledger is displayed newest-first. Ties keep source order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(signedDelta(account, entries[i]))
		entries[i].RunningBalance = balance
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// directBalance is the account's own-postings balance: the final running
// balance of its reconstructed ledger. Summation only, so the result is
// independent of source ordering.
func (r *Reconstructor) directBalance(ctx context.Context, account accounts.Account, asOf time.Time, src *sourceSet) (decimal.Decimal, error) {
	entries, err := ruleFor(account.Type).collect(ctx, account.ID, src)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, e := range filterAsOf(entries, asOf) {
		balance = balance.Add(signedDelta(account, e))
	}
	return balance, nil
}

// signedDelta applies the normal-side convention: debits grow asset and
// expense accounts, credits grow liability, equity and income accounts.
func signedDelta(account accounts.Account, e Entry) decimal.Decimal {
	if account.Side() == accounts.DebitNormal {
		return e.Debit.Sub(e.Credit)
	}
	return e.Credit.Sub(e.Debit)
}

func filterAsOf(entries []Entry, asOf time.Time) []Entry {
	if asOf.IsZero() {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if !e.Date.After(asOf) {
			kept = append(kept, e)
		}
	}
	return kept
}

package ledger

import (
	"context"
	"fmt"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
)

// sourceRule selects and shapes the source records that feed one category of
// account. One implementation exists per category, keeping the mapping from
// account type to source selection total.
type sourceRule interface {
	collect(ctx context.Context, accountID int64, src *sourceSet) ([]Entry, error)
}

// ruleFor maps an account type to its source-selection rule.
func ruleFor(t accounts.AccountType) sourceRule {
	switch t {
	case accounts.AccountTypeBank:
		return bankRule{}
	case accounts.AccountTypeAccountsReceivable:
		return receivableRule{}
	case accounts.AccountTypeIncome, accounts.AccountTypeOtherIncome:
		return incomeRule{}
	default:
		return journalRule{}
	}
}

// bankRule feeds bank accounts from deposits in, bill payments out, and
// transfer journal lines.
type bankRule struct{}

func (bankRule) collect(ctx context.Context, accountID int64, src *sourceSet) ([]Entry, error) {
	var entries []Entry

	deposits, err := src.Deposits(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range deposits {
		if d.BankAccountID != accountID {
			continue
		}
		desc := d.Memo
		if desc == "" {
			desc = "Deposit"
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("deposit-%d", d.ID),
			Date:        d.Date,
			Description: desc,
			Reference:   d.Reference,
			Debit:       d.Amount,
			Kind:        KindDeposit,
		})
	}

	payments, err := src.BillPayments(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.PaymentAccountID != accountID {
			continue
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("bill-payment-%d", p.ID),
			Date:        p.Date,
			Description: "Bill payment",
			Reference:   p.Reference,
			Credit:      p.Amount,
			Kind:        KindPayment,
		})
	}

	lines, err := src.JournalLines(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.AccountID != accountID || l.SourceModule != journals.SourceModuleTransfer {
			continue
		}
		desc := l.Memo
		if desc == "" {
			desc = "Transfer"
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("journal-line-%d", l.ID),
			Date:        l.Date,
			Description: desc,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Kind:        KindTransfer,
		})
	}
	return entries, nil
}

// receivableRule feeds AR accounts from invoices still carrying an open
// balance.
type receivableRule struct{}

func (receivableRule) collect(ctx context.Context, accountID int64, src *sourceSet) ([]Entry, error) {
	invoices, err := src.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, inv := range invoices {
		if !inv.OpenBalance.IsPositive() {
			continue
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("invoice-%d", inv.ID),
			Date:        inv.Date,
			Description: fmt.Sprintf("Invoice %s", inv.Number),
			Reference:   inv.Number,
			Debit:       inv.OpenBalance,
			Kind:        KindInvoice,
		})
	}
	return entries, nil
}

// incomeRule feeds income accounts from every invoice's total.
type incomeRule struct{}

func (incomeRule) collect(ctx context.Context, accountID int64, src *sourceSet) ([]Entry, error) {
	invoices, err := src.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, inv := range invoices {
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("invoice-%d", inv.ID),
			Date:        inv.Date,
			Description: fmt.Sprintf("Invoice %s", inv.Number),
			Reference:   inv.Number,
			Credit:      inv.Total,
			Kind:        KindInvoice,
		})
	}
	return entries, nil
}

// journalRule feeds every other account type from journal lines referencing
// the account directly.
type journalRule struct{}

func (journalRule) collect(ctx context.Context, accountID int64, src *sourceSet) ([]Entry, error) {
	lines, err := src.JournalLines(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, l := range lines {
		if l.AccountID != accountID {
			continue
		}
		kind := KindOther
		if l.SourceModule == journals.SourceModuleTransfer {
			kind = KindTransfer
		}
		desc := l.Memo
		if desc == "" {
			desc = "Journal entry"
		}
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("journal-line-%d", l.ID),
			Date:        l.Date,
			Description: desc,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Kind:        kind,
		})
	}
	return entries, nil
}

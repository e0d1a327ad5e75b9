package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
)

type memorySources struct {
	deposits []treasury.Deposit
	payments []ap.BillPayment
	invoices []ar.Invoice
	lines    []journals.Line

	depositCalls int
	depositErr   error
}

func (m *memorySources) ListDeposits(ctx context.Context) ([]treasury.Deposit, error) {
	m.depositCalls++
	if m.depositErr != nil {
		return nil, m.depositErr
	}
	return m.deposits, nil
}

func (m *memorySources) ListBillPayments(ctx context.Context) ([]ap.BillPayment, error) {
	return m.payments, nil
}

func (m *memorySources) ListInvoices(ctx context.Context) ([]ar.Invoice, error) {
	return m.invoices, nil
}

func (m *memorySources) ListLines(ctx context.Context) ([]journals.Line, error) {
	return m.lines, nil
}

func newReconstructor(m *memorySources) *Reconstructor {
	return NewReconstructor(m, m, m, m)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cashAccount() accounts.Account {
	return accounts.Account{ID: 10, Code: "1100", Name: "Cash", Type: accounts.AccountTypeBank, Active: true}
}

func TestReconstructBankRunningBalance(t *testing.T) {
	src := &memorySources{
		deposits: []treasury.Deposit{
			{ID: 1, BankAccountID: 10, Date: date(2024, time.January, 1), Amount: dec("1000"), Memo: "Opening deposit"},
		},
		payments: []ap.BillPayment{
			{ID: 7, PaymentAccountID: 10, Date: date(2024, time.January, 5), Amount: dec("300"), Reference: "CHK-7"},
		},
	}
	recon := newReconstructor(src)

	entries, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first for display, balances accumulated oldest first.
	require.Equal(t, "bill-payment-7", entries[0].ID)
	require.True(t, entries[0].RunningBalance.Equal(dec("700")))
	require.Equal(t, KindPayment, entries[0].Kind)

	require.Equal(t, "deposit-1", entries[1].ID)
	require.True(t, entries[1].RunningBalance.Equal(dec("1000")))
	require.Equal(t, KindDeposit, entries[1].Kind)
	require.Equal(t, "Opening deposit", entries[1].Description)
}

func TestReconstructEmptyLedger(t *testing.T) {
	recon := newReconstructor(&memorySources{})
	entries, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestReconstructAsOfCutoff(t *testing.T) {
	src := &memorySources{
		deposits: []treasury.Deposit{
			{ID: 1, BankAccountID: 10, Date: date(2024, time.January, 1), Amount: dec("1000")},
			{ID: 2, BankAccountID: 10, Date: date(2024, time.January, 31), Amount: dec("250")},
			{ID: 3, BankAccountID: 10, Date: date(2024, time.February, 1), Amount: dec("99")},
		},
	}
	recon := newReconstructor(src)

	// The cutoff is inclusive: the deposit dated exactly on the boundary
	// stays in.
	entries, err := recon.Reconstruct(context.Background(), cashAccount(), date(2024, time.January, 31))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.True(t, entries[0].RunningBalance.Equal(dec("1250")))
}

func TestReconstructZeroAmountEntriesKept(t *testing.T) {
	src := &memorySources{
		deposits: []treasury.Deposit{
			{ID: 1, BankAccountID: 10, Date: date(2024, time.March, 1), Amount: decimal.Zero, Memo: "Voided deposit"},
		},
	}
	recon := newReconstructor(src)

	entries, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].RunningBalance.IsZero())
}

func TestReconstructSameDayKeepsSourceOrder(t *testing.T) {
	day := date(2024, time.April, 2)
	src := &memorySources{
		deposits: []treasury.Deposit{
			{ID: 1, BankAccountID: 10, Date: day, Amount: dec("100")},
			{ID: 2, BankAccountID: 10, Date: day, Amount: dec("50")},
		},
	}
	recon := newReconstructor(src)

	first, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	second, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Source order decides ties, so deposit 1 accumulates before deposit 2.
	require.Equal(t, "deposit-2", first[0].ID)
	require.True(t, first[0].RunningBalance.Equal(dec("150")))
	require.Equal(t, "deposit-1", first[1].ID)
	require.True(t, first[1].RunningBalance.Equal(dec("100")))
}

func TestReconstructReceivableOnlyOpenInvoices(t *testing.T) {
	src := &memorySources{
		invoices: []ar.Invoice{
			{ID: 1, Number: "INV-1", Date: date(2024, time.May, 1), Total: dec("500"), OpenBalance: dec("500")},
			{ID: 2, Number: "INV-2", Date: date(2024, time.May, 2), Total: dec("800"), OpenBalance: decimal.Zero},
		},
	}
	recon := newReconstructor(src)
	arAccount := accounts.Account{ID: 20, Code: "1200", Name: "Accounts Receivable", Type: accounts.AccountTypeAccountsReceivable}

	entries, err := recon.Reconstruct(context.Background(), arAccount, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "invoice-1", entries[0].ID)
	require.True(t, entries[0].Debit.Equal(dec("500")))
	require.True(t, entries[0].RunningBalance.Equal(dec("500")))
}

func TestReconstructIncomeUsesTotals(t *testing.T) {
	src := &memorySources{
		invoices: []ar.Invoice{
			{ID: 1, Number: "INV-1", Date: date(2024, time.May, 1), Total: dec("500"), OpenBalance: decimal.Zero},
			{ID: 2, Number: "INV-2", Date: date(2024, time.May, 2), Total: dec("800"), OpenBalance: dec("100")},
		},
	}
	recon := newReconstructor(src)
	sales := accounts.Account{ID: 30, Code: "4000", Name: "Sales", Type: accounts.AccountTypeIncome}

	entries, err := recon.Reconstruct(context.Background(), sales, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Income is credit-normal, so invoice credits grow the balance.
	require.True(t, entries[0].RunningBalance.Equal(dec("1300")))
	require.True(t, entries[1].RunningBalance.Equal(dec("500")))
}

func TestReconstructJournalRuleForEquity(t *testing.T) {
	src := &memorySources{
		lines: []journals.Line{
			{ID: 1, AccountID: 40, Date: date(2024, time.June, 1), Credit: dec("1000"), Memo: "Owner contribution"},
			{ID: 2, AccountID: 41, Date: date(2024, time.June, 1), Debit: dec("1000")},
			{ID: 3, AccountID: 40, Date: date(2024, time.June, 3), Debit: dec("200"), SourceModule: journals.SourceModuleTransfer},
		},
	}
	recon := newReconstructor(src)
	equity := accounts.Account{ID: 40, Code: "3000", Name: "Owner Equity", Type: accounts.AccountTypeEquity}

	entries, err := recon.Reconstruct(context.Background(), equity, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, KindTransfer, entries[0].Kind)
	require.True(t, entries[0].RunningBalance.Equal(dec("800")))
	require.Equal(t, KindOther, entries[1].Kind)
	require.True(t, entries[1].RunningBalance.Equal(dec("1000")))
}

func TestReconstructTransferLinesInBankLedger(t *testing.T) {
	src := &memorySources{
		lines: []journals.Line{
			{ID: 1, AccountID: 10, Date: date(2024, time.July, 1), Debit: dec("400"), SourceModule: journals.SourceModuleTransfer},
			{ID: 2, AccountID: 10, Date: date(2024, time.July, 2), Credit: dec("150"), SourceModule: "MANUAL"},
		},
	}
	recon := newReconstructor(src)

	// Non-transfer journal lines stay out of the bank ledger.
	entries, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, KindTransfer, entries[0].Kind)
	require.True(t, entries[0].RunningBalance.Equal(dec("400")))
}

func TestReconstructSourceFailure(t *testing.T) {
	src := &memorySources{depositErr: errors.New("connection refused")}
	recon := newReconstructor(src)

	_, err := recon.Reconstruct(context.Background(), cashAccount(), time.Time{})
	var fetchErr *SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, "deposits", fetchErr.Source)
}

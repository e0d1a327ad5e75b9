package accounting

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/ledger"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/inventory"
	"github.com/aquafarm-erp/aquafarm-erp/internal/payroll"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
)

func ptr(v int64) *int64 { return &v }

// handlerBook fakes every repository behind the accounting endpoints.
type handlerBook struct {
	accounts []accounts.Account
	deposits []treasury.Deposit

	journalEntries []journals.Entry
	journalLines   []journals.Line
	nextEntryID    int64
}

func (b *handlerBook) List(ctx context.Context) ([]accounts.Account, error) {
	return b.accounts, nil
}

func (b *handlerBook) ListDeposits(ctx context.Context) ([]treasury.Deposit, error) {
	return b.deposits, nil
}

func (b *handlerBook) ListBillPayments(ctx context.Context) ([]ap.BillPayment, error) {
	return nil, nil
}

func (b *handlerBook) ListInvoices(ctx context.Context) ([]ar.Invoice, error) {
	return nil, nil
}

func (b *handlerBook) ListBills(ctx context.Context) ([]ap.Bill, error) {
	return nil, nil
}

func (b *handlerBook) ListRuns(ctx context.Context) ([]payroll.Run, error) {
	return nil, nil
}

func (b *handlerBook) ListItems(ctx context.Context) ([]inventory.Item, error) {
	return nil, nil
}

func (b *handlerBook) ListLines(ctx context.Context) ([]journals.Line, error) {
	return append([]journals.Line(nil), b.journalLines...), nil
}

func (b *handlerBook) WithTx(ctx context.Context, fn func(context.Context, journals.TxRepository) error) error {
	return fn(ctx, (*handlerTxRepo)(b))
}

type handlerTxRepo handlerBook

func (r *handlerTxRepo) InsertEntry(ctx context.Context, in journals.Entry) (journals.Entry, error) {
	r.nextEntryID++
	entry := in
	entry.ID = r.nextEntryID
	entry.Number = r.nextEntryID
	entry.Status = journals.StatusPosted
	r.journalEntries = append(r.journalEntries, entry)
	return entry, nil
}

func (r *handlerTxRepo) InsertLines(ctx context.Context, entryID int64, lines []journals.Line) error {
	for _, line := range lines {
		line.JournalID = entryID
		line.SourceModule = journals.SourceModuleTransfer
		r.journalLines = append(r.journalLines, line)
	}
	return nil
}

func newTestRouter(book *handlerBook) chi.Router {
	accountService := accounts.NewService(book)
	journalService := journals.NewService(book, book)
	recon := ledger.NewReconstructor(book, book, book, book)
	aggregator := ledger.NewAggregator(book, recon)
	assembler := reports.NewAssembler(book, book, book, book, book, aggregator, decimal.NewFromInt(1000))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, accountService, journalService, recon, aggregator, assembler)

	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func chartedBook() *handlerBook {
	return &handlerBook{
		accounts: []accounts.Account{
			{ID: 1, Code: "1000", Name: "Assets", Type: accounts.AccountTypeOtherAsset, Active: true},
			{ID: 2, Code: "1100", Name: "Cash", Type: accounts.AccountTypeBank, ParentID: ptr(1), Active: true},
			{ID: 3, Code: "1110", Name: "Savings", Type: accounts.AccountTypeBank, ParentID: ptr(1), Active: true},
		},
		deposits: []treasury.Deposit{
			{ID: 1, BankAccountID: 2, Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000)},
		},
	}
}

func TestTreeEndpoint(t *testing.T) {
	router := newTestRouter(chartedBook())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/tree", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var roots []treeNodeVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roots))
	require.Len(t, roots, 1)
	require.Equal(t, "Assets", roots[0].Name)
	require.Len(t, roots[0].Children, 2)
	require.Equal(t, "Cash", roots[0].Children[0].Name)
}

func TestBalancesEndpoint(t *testing.T) {
	router := newTestRouter(chartedBook())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/balances", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var balances []balanceVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balances))
	require.Len(t, balances, 3)
	require.Equal(t, "1000.00", balances[0].Balance)
	require.Equal(t, "$1,000.00", balances[0].FormattedBalance)
	require.Equal(t, 0, balances[0].Depth)
	require.Equal(t, 1, balances[1].Depth)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/balances?as_of=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerEndpoint(t *testing.T) {
	router := newTestRouter(chartedBook())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/2/ledger", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []ledgerEntryVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "deposit-1", entries[0].ID)
	require.Equal(t, "2024-01-02", entries[0].Date)
	require.Equal(t, "1000.00", entries[0].RunningBalance)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/99/ledger", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/abc/ledger", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferEndpoint(t *testing.T) {
	book := chartedBook()
	router := newTestRouter(book)

	body := `{"date":"2024-02-01","from_account":2,"to_account":3,"amount":"250.00","memo":"sweep"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/transfer", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, book.journalLines, 2)

	// The transfer shows up in both bank ledgers.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/3/ledger", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []ledgerEntryVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "transfer", entries[0].Kind)
	require.Equal(t, "250.00", entries[0].RunningBalance)

	badBody := `{"date":"2024-02-01","from_account":2,"to_account":2,"amount":"250.00"}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/transfer", strings.NewReader(badBody)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/transfer", strings.NewReader("{broken")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBalanceSheetEndpoint(t *testing.T) {
	router := newTestRouter(chartedBook())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?as_of=2024-03-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var vm reports.BalanceSheetVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.Equal(t, "2024-03-01", vm.AsOf)
	require.Equal(t, "all", vm.PondFilter)
	require.Equal(t, "1000.00", vm.Assets.Current.Cash.Amount)
	require.True(t, vm.Summary.Balanced)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?pond_id=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.Equal(t, "7", vm.PondFilter)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?pond_id=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/ledger"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/farm"
	"github.com/aquafarm-erp/aquafarm-erp/internal/inventory"
	"github.com/aquafarm-erp/aquafarm-erp/internal/payroll"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
)

// jobBook fakes every collaborator behind the assembler plus the pond list.
type jobBook struct {
	ponds []farm.Pond
}

func (b *jobBook) List(ctx context.Context) ([]accounts.Account, error) {
	return []accounts.Account{
		{ID: 1, Code: "1100", Name: "Cash", Type: accounts.AccountTypeBank, Active: true},
	}, nil
}

func (b *jobBook) ListDeposits(ctx context.Context) ([]treasury.Deposit, error) {
	return []treasury.Deposit{
		{ID: 1, BankAccountID: 1, Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000)},
	}, nil
}

func (b *jobBook) ListBillPayments(ctx context.Context) ([]ap.BillPayment, error) {
	return nil, nil
}

func (b *jobBook) ListInvoices(ctx context.Context) ([]ar.Invoice, error) {
	return nil, nil
}

func (b *jobBook) ListBills(ctx context.Context) ([]ap.Bill, error) {
	return nil, nil
}

func (b *jobBook) ListRuns(ctx context.Context) ([]payroll.Run, error) {
	return nil, nil
}

func (b *jobBook) ListItems(ctx context.Context) ([]inventory.Item, error) {
	return nil, nil
}

func (b *jobBook) ListLines(ctx context.Context) ([]journals.Line, error) {
	return nil, nil
}

func (b *jobBook) ListPonds(ctx context.Context) ([]farm.Pond, error) {
	return b.ponds, nil
}

func newTestAssembler(book *jobBook) *reports.Assembler {
	recon := ledger.NewReconstructor(book, book, book, book)
	agg := ledger.NewAggregator(book, recon)
	return reports.NewAssembler(book, book, book, book, book, agg, decimal.NewFromInt(1000))
}

func TestReportsWarmupCachesSheets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	book := &jobBook{ponds: []farm.Pond{
		{ID: 1, Name: "North pond", Active: true},
		{ID: 2, Name: "Drained pond", Active: false},
	}}
	job := NewReportsWarmupJob(newTestAssembler(book), book, client, nil, time.Minute)

	task, err := NewReportsWarmupTask(ReportsWarmupPayload{AsOf: "2024-03-01"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	asOf := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	raw, err := client.Get(context.Background(), CacheKey(asOf, "all")).Result()
	require.NoError(t, err)

	var vm reports.BalanceSheetVM
	require.NoError(t, json.Unmarshal([]byte(raw), &vm))
	require.Equal(t, "2024-03-01", vm.AsOf)
	require.Equal(t, "all", vm.PondFilter)
	require.Equal(t, "1000.00", vm.Assets.Current.Cash.Amount)

	// Active ponds get their own entry, inactive ponds do not.
	require.NoError(t, client.Get(context.Background(), CacheKey(asOf, "1")).Err())
	require.ErrorIs(t, client.Get(context.Background(), CacheKey(asOf, "2")).Err(), redis.Nil)

	ttl := client.TTL(context.Background(), CacheKey(asOf, "all")).Val()
	require.Greater(t, ttl, time.Duration(0))
}

func TestReportsWarmupBadPayloadSkipsRetry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	job := NewReportsWarmupJob(newTestAssembler(&jobBook{}), nil, client, nil, time.Minute)

	require.ErrorIs(t, job.Handle(context.Background(), asynq.NewTask(TaskReportsWarmup, []byte("{garbage"))), asynq.SkipRetry)

	task, err := NewReportsWarmupTask(ReportsWarmupPayload{AsOf: "not-a-date"})
	require.NoError(t, err)
	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

func TestGLIntegrityHandle(t *testing.T) {
	job := NewGLIntegrityJob(newTestAssembler(&jobBook{}), nil)

	task, err := NewGLIntegrityTask(GLIntegrityPayload{AsOf: "2024-03-01"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	require.ErrorIs(t, job.Handle(context.Background(), asynq.NewTask(TaskGLIntegrity, []byte("{garbage"))), asynq.SkipRetry)
}

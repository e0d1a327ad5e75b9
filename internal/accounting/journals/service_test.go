package journals

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
)

type memoryJournalRepo struct {
	entries     []Entry
	lines       []Line
	nextEntryID int64
	nextLineID  int64
	txErr       error
}

func (r *memoryJournalRepo) ListLines(ctx context.Context) ([]Line, error) {
	return append([]Line(nil), r.lines...), nil
}

func (r *memoryJournalRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r.txErr != nil {
		return r.txErr
	}
	// Snapshot state so a failed callback leaves the repo untouched.
	entries := append([]Entry(nil), r.entries...)
	lines := append([]Line(nil), r.lines...)
	if err := fn(ctx, (*memoryTxRepo)(r)); err != nil {
		r.entries, r.lines = entries, lines
		return err
	}
	return nil
}

type memoryTxRepo memoryJournalRepo

func (r *memoryTxRepo) InsertEntry(ctx context.Context, in Entry) (Entry, error) {
	r.nextEntryID++
	entry := in
	entry.ID = r.nextEntryID
	entry.Number = r.nextEntryID
	entry.Status = StatusPosted
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *memoryTxRepo) InsertLines(ctx context.Context, entryID int64, lines []Line) error {
	for _, line := range lines {
		r.nextLineID++
		line.ID = r.nextLineID
		line.JournalID = entryID
		r.lines = append(r.lines, line)
	}
	return nil
}

type memoryChart struct {
	list []accounts.Account
}

func (m *memoryChart) List(ctx context.Context) ([]accounts.Account, error) {
	return m.list, nil
}

func twoBankChart() *memoryChart {
	return &memoryChart{list: []accounts.Account{
		{ID: 1, Code: "1100", Name: "Operating", Type: accounts.AccountTypeBank, Active: true},
		{ID: 2, Code: "1110", Name: "Savings", Type: accounts.AccountTypeBank, Active: true},
	}}
}

func validTransfer() TransferInput {
	return TransferInput{
		Date:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		FromAccount: 1,
		ToAccount:   2,
		Amount:      decimal.RequireFromString("250.00"),
		Memo:        "Monthly sweep",
	}
}

func TestPostTransferBalancedPair(t *testing.T) {
	repo := &memoryJournalRepo{}
	svc := NewService(repo, twoBankChart())

	entry, err := svc.PostTransfer(context.Background(), validTransfer())
	require.NoError(t, err)

	require.Equal(t, SourceModuleTransfer, entry.SourceModule)
	require.Equal(t, StatusPosted, entry.Status)
	require.NotEqual(t, [16]byte{}, [16]byte(entry.SourceID))
	require.Len(t, entry.Lines, 2)

	debits, credits := decimal.Zero, decimal.Zero
	for _, line := range entry.Lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	require.True(t, debits.Equal(credits))

	// Destination is debited, source credited.
	require.Equal(t, int64(2), entry.Lines[0].AccountID)
	require.True(t, entry.Lines[0].Debit.Equal(decimal.RequireFromString("250.00")))
	require.Equal(t, int64(1), entry.Lines[1].AccountID)
	require.True(t, entry.Lines[1].Credit.Equal(decimal.RequireFromString("250.00")))

	require.Len(t, repo.entries, 1)
	require.Len(t, repo.lines, 2)
}

func TestPostTransferSameAccount(t *testing.T) {
	svc := NewService(&memoryJournalRepo{}, twoBankChart())

	input := validTransfer()
	input.ToAccount = input.FromAccount
	_, err := svc.PostTransfer(context.Background(), input)
	require.Error(t, err)
}

func TestPostTransferNonPositiveAmount(t *testing.T) {
	svc := NewService(&memoryJournalRepo{}, twoBankChart())

	input := validTransfer()
	input.Amount = decimal.RequireFromString("-5")
	_, err := svc.PostTransfer(context.Background(), input)
	require.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestPostTransferUnknownAccount(t *testing.T) {
	svc := NewService(&memoryJournalRepo{}, twoBankChart())

	input := validTransfer()
	input.ToAccount = 99
	_, err := svc.PostTransfer(context.Background(), input)
	require.ErrorIs(t, err, ErrUnknownAccount)
}

func TestPostTransferDefaultsDate(t *testing.T) {
	repo := &memoryJournalRepo{}
	svc := NewService(repo, twoBankChart())
	today := time.Date(2024, time.July, 4, 9, 30, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return today })

	input := validTransfer()
	input.Date = time.Time{}
	entry, err := svc.PostTransfer(context.Background(), input)
	require.NoError(t, err)
	require.True(t, entry.Date.Equal(today))
	require.True(t, entry.Lines[0].Date.Equal(today))
}

func TestPostTransferMissingFields(t *testing.T) {
	svc := NewService(&memoryJournalRepo{}, twoBankChart())

	_, err := svc.PostTransfer(context.Background(), TransferInput{})
	require.Error(t, err)
}

func TestPostTransferRepoFailureRollsBack(t *testing.T) {
	repo := &memoryJournalRepo{txErr: context.DeadlineExceeded}
	svc := NewService(repo, twoBankChart())

	_, err := svc.PostTransfer(context.Background(), validTransfer())
	require.Error(t, err)
	require.Empty(t, repo.entries)
	require.Empty(t, repo.lines)
}

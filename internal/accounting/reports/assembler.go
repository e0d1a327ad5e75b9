package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/ledger"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/inventory"
	"github.com/aquafarm-erp/aquafarm-erp/internal/payroll"
)

// CashAccountName selects the account whose rolled-up balance becomes the
// cash line.
const CashAccountName = "Cash"

type (
	InvoiceSource interface {
		ListInvoices(ctx context.Context) ([]ar.Invoice, error)
	}
	BillSource interface {
		ListBills(ctx context.Context) ([]ap.Bill, error)
	}
	PayrollSource interface {
		ListRuns(ctx context.Context) ([]payroll.Run, error)
	}
	ItemSource interface {
		ListItems(ctx context.Context) ([]inventory.Item, error)
	}
	AccountSource interface {
		List(ctx context.Context) ([]accounts.Account, error)
	}
)

// Assembler composes balance sheet snapshots. Each category rule is an
// independent reduction over the filtered sources; the sources themselves
// are fetched concurrently and any fetch failure aborts the whole assembly
// rather than producing a partial snapshot.
type Assembler struct {
	invoices   InvoiceSource
	bills      BillSource
	payroll    PayrollSource
	items      ItemSource
	accounts   AccountSource
	aggregator *ledger.Aggregator

	capitalInvestment decimal.Decimal
}

func NewAssembler(
	invoices InvoiceSource,
	bills BillSource,
	payrollRuns PayrollSource,
	items ItemSource,
	accountSource AccountSource,
	aggregator *ledger.Aggregator,
	capitalInvestment decimal.Decimal,
) *Assembler {
	return &Assembler{
		invoices:          invoices,
		bills:             bills,
		payroll:           payrollRuns,
		items:             items,
		accounts:          accountSource,
		aggregator:        aggregator,
		capitalInvestment: capitalInvestment,
	}
}

// Assemble builds the snapshot as of the given date, optionally scoped to
// one pond.
func (a *Assembler) Assemble(ctx context.Context, asOf time.Time, filter PondFilter) (Snapshot, error) {
	var (
		invoices []ar.Invoice
		bills    []ap.Bill
		runs     []payroll.Run
		items    []inventory.Item
		cash     decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := a.invoices.ListInvoices(gctx)
		if err != nil {
			return &ledger.SourceFetchError{Source: "invoices", Err: err}
		}
		invoices = list
		return nil
	})
	g.Go(func() error {
		list, err := a.bills.ListBills(gctx)
		if err != nil {
			return &ledger.SourceFetchError{Source: "bills", Err: err}
		}
		bills = list
		return nil
	})
	g.Go(func() error {
		list, err := a.payroll.ListRuns(gctx)
		if err != nil {
			return &ledger.SourceFetchError{Source: "payroll runs", Err: err}
		}
		runs = list
		return nil
	})
	g.Go(func() error {
		list, err := a.items.ListItems(gctx)
		if err != nil {
			return &ledger.SourceFetchError{Source: "items", Err: err}
		}
		items = list
		return nil
	})
	g.Go(func() error {
		balance, err := a.cashBalance(gctx, asOf)
		if err != nil {
			return err
		}
		cash = balance
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{AsOf: asOf, PondFilter: filter}

	invoices = filterInvoices(invoices, asOf, filter)
	bills = filterBills(bills, asOf, filter)
	runs = filterRuns(runs, asOf, filter)
	items = filterItems(items, filter)
	snap.MissingAmounts = countMissing(invoices, bills, runs, items)

	// Assets.
	snap.Assets.Current.Cash = cash
	for _, inv := range invoices {
		snap.Assets.Current.AccountsReceivable = snap.Assets.Current.AccountsReceivable.Add(inv.OpenBalance)
	}
	for _, item := range items {
		switch item.Category {
		case inventory.CategoryFish, inventory.CategoryFeed, inventory.CategoryMedicine:
			snap.Assets.Current.Inventory = snap.Assets.Current.Inventory.Add(item.StockValue())
		case inventory.CategoryEquipment:
			snap.Assets.Fixed.Equipment = snap.Assets.Fixed.Equipment.Add(item.StockValue())
		}
	}
	snap.Assets.Current.FishBiomass = fishBiomass(invoices, filter)
	snap.Assets.Current.Total = snap.Assets.Current.Cash.
		Add(snap.Assets.Current.AccountsReceivable).
		Add(snap.Assets.Current.Inventory).
		Add(snap.Assets.Current.FishBiomass)
	snap.Assets.Fixed.Total = snap.Assets.Fixed.Equipment
	snap.Assets.Total = snap.Assets.Current.Total.Add(snap.Assets.Fixed.Total)

	// Liabilities.
	for _, b := range bills {
		snap.Liabilities.Current.AccountsPayable = snap.Liabilities.Current.AccountsPayable.Add(b.OpenBalance)
	}
	for _, run := range runs {
		if run.Status != payroll.StatusPaid {
			snap.Liabilities.Current.AccruedPayroll = snap.Liabilities.Current.AccruedPayroll.Add(run.TotalNet)
		}
	}
	snap.Liabilities.Current.Total = snap.Liabilities.Current.AccountsPayable.Add(snap.Liabilities.Current.AccruedPayroll)
	snap.Liabilities.Total = snap.Liabilities.Current.Total

	// Equity. Net losses clamp retained earnings to zero; Check surfaces
	// the imbalance this causes instead of reconciling it.
	revenue := decimal.Zero
	for _, inv := range invoices {
		revenue = revenue.Add(inv.Total)
	}
	expense := decimal.Zero
	for _, b := range bills {
		expense = expense.Add(b.Total)
	}
	for _, run := range runs {
		expense = expense.Add(run.TotalNet)
	}
	retained := revenue.Sub(expense)
	if retained.IsNegative() {
		retained = decimal.Zero
	}
	snap.Equity.CapitalInvestment = a.capitalInvestment
	snap.Equity.RetainedEarnings = retained
	snap.Equity.Total = snap.Equity.CapitalInvestment.Add(snap.Equity.RetainedEarnings)

	snap.Summary.TotalAssets = snap.Assets.Total
	snap.Summary.TotalLiabilities = snap.Liabilities.Total
	snap.Summary.TotalEquity = snap.Equity.Total
	snap.Summary.BalanceDelta = snap.Assets.Total.Sub(snap.Liabilities.Total.Add(snap.Equity.Total))

	return snap, nil
}

func (a *Assembler) cashBalance(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	balances, err := a.aggregator.Balances(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range balances {
		if b.Account.Name == CashAccountName {
			return b.Balance, nil
		}
	}
	// No cash account configured is not an error: the line reports zero.
	return decimal.Zero, nil
}

// fishBiomass sums lineWeight x lineRate over invoice lines tagged as fish.
// Under a specific pond filter a line with its own pond reference must match
// it; a line without one inherits the invoice's attribution.
func fishBiomass(invoices []ar.Invoice, filter PondFilter) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			if line.ItemCategory != string(inventory.CategoryFish) {
				continue
			}
			if line.PondID != nil && !filter.Matches(line.PondID) {
				continue
			}
			total = total.Add(line.TotalWeight.Mul(line.Rate))
		}
	}
	return total
}

func filterInvoices(invoices []ar.Invoice, asOf time.Time, filter PondFilter) []ar.Invoice {
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.Date.After(asOf) {
			continue
		}
		if !filter.Matches(inv.PondID) && !anyLineMatches(inv.Lines, filter) {
			continue
		}
		kept = append(kept, inv)
	}
	return kept
}

// anyLineMatches attributes an invoice to a pond through its line items when
// the invoice itself carries no pond reference.
func anyLineMatches(lines []ar.InvoiceLine, filter PondFilter) bool {
	for _, line := range lines {
		if line.PondID != nil && filter.Matches(line.PondID) {
			return true
		}
	}
	return false
}

func filterBills(bills []ap.Bill, asOf time.Time, filter PondFilter) []ap.Bill {
	kept := bills[:0]
	for _, b := range bills {
		if b.Date.After(asOf) || !filter.Matches(b.PondID) {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

func filterRuns(runs []payroll.Run, asOf time.Time, filter PondFilter) []payroll.Run {
	kept := runs[:0]
	for _, run := range runs {
		if run.PayDate.After(asOf) || !filter.Matches(run.PondID) {
			continue
		}
		kept = append(kept, run)
	}
	return kept
}

func filterItems(items []inventory.Item, filter PondFilter) []inventory.Item {
	kept := items[:0]
	for _, item := range items {
		if !filter.Matches(item.PondID) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func countMissing(invoices []ar.Invoice, bills []ap.Bill, runs []payroll.Run, items []inventory.Item) int {
	n := 0
	for _, inv := range invoices {
		n += inv.MissingAmounts
	}
	for _, b := range bills {
		n += b.MissingAmounts
	}
	for _, run := range runs {
		n += run.MissingAmounts
	}
	for _, item := range items {
		n += item.MissingAmounts
	}
	return n
}

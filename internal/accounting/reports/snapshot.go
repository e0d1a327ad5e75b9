// Package reports assembles point-in-time balance sheet snapshots from the
// transactional sources and derives consistency results and ratios from
// them.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// PondFilter scopes a snapshot to one pond or to the whole farm.
type PondFilter struct {
	pondID int64
	all    bool
}

// AllPonds includes every record, pond-tagged or not.
func AllPonds() PondFilter {
	return PondFilter{all: true}
}

// OnePond includes only records attributable to the given pond. Records
// with no pond association are excluded: they cannot be attributed.
func OnePond(id int64) PondFilter {
	return PondFilter{pondID: id}
}

// All reports whether the filter spans every pond.
func (f PondFilter) All() bool {
	return f.all
}

// PondID returns the selected pond id; zero when the filter is AllPonds.
func (f PondFilter) PondID() int64 {
	return f.pondID
}

// Matches applies the filter to a record's pond reference.
func (f PondFilter) Matches(pondID *int64) bool {
	if f.all {
		return true
	}
	return pondID != nil && *pondID == f.pondID
}

// CurrentAssets section.
type CurrentAssets struct {
	Cash               decimal.Decimal
	AccountsReceivable decimal.Decimal
	Inventory          decimal.Decimal
	FishBiomass        decimal.Decimal
	Total              decimal.Decimal
}

// FixedAssets section.
type FixedAssets struct {
	Equipment decimal.Decimal
	Total     decimal.Decimal
}

// Assets section.
type Assets struct {
	Current CurrentAssets
	Fixed   FixedAssets
	Total   decimal.Decimal
}

// CurrentLiabilities section.
type CurrentLiabilities struct {
	AccountsPayable decimal.Decimal
	AccruedPayroll  decimal.Decimal
	Total           decimal.Decimal
}

// Liabilities section.
type Liabilities struct {
	Current CurrentLiabilities
	Total   decimal.Decimal
}

// Equity section. RetainedEarnings is clamped at zero: an operating loss
// never shows as negative equity here, and the resulting imbalance is
// surfaced by Check rather than reconciled away.
type Equity struct {
	CapitalInvestment decimal.Decimal
	RetainedEarnings  decimal.Decimal
	Total             decimal.Decimal
}

// Summary totals. BalanceDelta = TotalAssets - (TotalLiabilities + TotalEquity).
type Summary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	BalanceDelta     decimal.Decimal
}

// Snapshot is a derived balance sheet. It is a pure function of the sources,
// the as-of date and the pond filter, and is never stored.
type Snapshot struct {
	AsOf       time.Time
	PondFilter PondFilter

	Assets      Assets
	Liabilities Liabilities
	Equity      Equity
	Summary     Summary

	// MissingAmounts counts monetary columns that were NULL in the source
	// records contributing to this snapshot.
	MissingAmounts int
}

// Package ledger reconstructs per-account ledgers from the transactional
// source records and rolls account balances up the chart of accounts.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger entry by the source record that produced it.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindInvoice  Kind = "invoice"
	KindPayment  Kind = "payment"
	KindTransfer Kind = "transfer"
	KindOther    Kind = "other"
)

// Entry is one derived ledger row. Entries are produced fresh on every
// request and never persisted.
type Entry struct {
	ID             string
	Date           time.Time
	Description    string
	Reference      string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
	Kind           Kind
}

// SourceFetchError reports a collaborator query failure. The in-flight
// reconstruction or assembly aborts; no partial result is returned.
type SourceFetchError struct {
	Source string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("ledger: fetch %s: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

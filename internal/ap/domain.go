// Package ap holds the accounts-payable source records: vendor bills and the
// payments made against them.
package ap

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill model.
type Bill struct {
	ID          int64
	Number      string
	VendorID    int64
	Date        time.Time
	Total       decimal.Decimal
	OpenBalance decimal.Decimal
	PondID      *int64

	// MissingAmounts counts monetary columns that were NULL at load time.
	MissingAmounts int
}

// BillPayment records money paid to a vendor out of a payment account.
// BillID is nil for on-account payments not tied to a single bill.
type BillPayment struct {
	ID               int64
	VendorID         int64
	BillID           *int64
	PaymentAccountID int64
	Date             time.Time
	Amount           decimal.Decimal
	Reference        string

	MissingAmounts int
}

// Package treasury holds bank deposit source records.
package treasury

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit records money placed into a bank account.
type Deposit struct {
	ID            int64
	BankAccountID int64
	Date          time.Time
	Amount        decimal.Decimal
	Memo          string
	Reference     string

	MissingAmounts int
}

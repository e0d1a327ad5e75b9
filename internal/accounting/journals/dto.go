package journals

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferInput describes a fund transfer between two accounts. It becomes
// one balanced journal entry: a debit line on the destination account and a
// credit line on the source account. A zero Date posts on the current day.
type TransferInput struct {
	Date        time.Time       `json:"date"`
	FromAccount int64           `json:"from_account" validate:"required,gt=0"`
	ToAccount   int64           `json:"to_account" validate:"required,gt=0,nefield=FromAccount"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Memo        string          `json:"memo" validate:"max=500"`
}

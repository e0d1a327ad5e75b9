// Package payroll holds payroll run source records. Unpaid runs contribute
// to accrued payroll on the balance sheet; all runs count toward expenses.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enumerates payroll run lifecycle values.
type RunStatus string

const (
	StatusDraft RunStatus = "draft"
	StatusPaid  RunStatus = "paid"
)

// Run model.
type Run struct {
	ID       int64
	PayDate  time.Time
	Status   RunStatus
	TotalNet decimal.Decimal
	PondID   *int64

	MissingAmounts int
}

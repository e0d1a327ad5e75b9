package reports

import (
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// CheckResult is the outcome of verifying the accounting equation on a
// snapshot. An imbalance is a flagged result, not an error: the checker
// reports the delta and never attempts to correct it.
type CheckResult struct {
	Balanced bool
	Delta    decimal.Decimal
}

// Check verifies Assets = Liabilities + Equity within one cent.
func Check(s Snapshot) CheckResult {
	delta := s.Summary.BalanceDelta
	return CheckResult{
		Balanced: delta.Abs().Cmp(money.Epsilon) <= 0,
		Delta:    delta,
	}
}

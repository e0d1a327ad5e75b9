package reports

import "github.com/shopspring/decimal"

// Ratio is a derived financial ratio. Defined is false when the denominator
// was zero; the value is then meaningless and renders as "N/A".
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// RatioSet carries the standard ratios derived from one snapshot.
type RatioSet struct {
	CurrentRatio       Ratio
	DebtToEquity       Ratio
	EquityRatioPercent Ratio
}

var hundred = decimal.NewFromInt(100)

// Ratios derives the standard financial ratios from a snapshot. Pure
// constant-time arithmetic; zero denominators produce undefined ratios, not
// errors.
func Ratios(s Snapshot) RatioSet {
	var set RatioSet
	if !s.Liabilities.Current.Total.IsZero() {
		set.CurrentRatio = Ratio{
			Value:   s.Assets.Current.Total.Div(s.Liabilities.Current.Total),
			Defined: true,
		}
	}
	if !s.Equity.Total.IsZero() {
		set.DebtToEquity = Ratio{
			Value:   s.Liabilities.Total.Div(s.Equity.Total),
			Defined: true,
		}
	}
	if !s.Assets.Total.IsZero() {
		set.EquityRatioPercent = Ratio{
			Value:   s.Equity.Total.Mul(hundred).Div(s.Assets.Total),
			Defined: true,
		}
	}
	return set
}

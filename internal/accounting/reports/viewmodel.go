package reports

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
)

// MoneyVM renders an amount for API consumers: raw decimal string plus the
// grouped display form.
type MoneyVM struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

func NewMoneyVM(d decimal.Decimal) MoneyVM {
	return MoneyVM{Amount: d.StringFixed(2), Formatted: money.Format(d)}
}

// RatioVM renders a ratio, "N/A" when undefined.
type RatioVM struct {
	Value   string `json:"value"`
	Defined bool   `json:"defined"`
}

func newRatioVM(r Ratio, places int32) RatioVM {
	if !r.Defined {
		return RatioVM{Value: "N/A"}
	}
	return RatioVM{Value: r.Value.StringFixed(places), Defined: true}
}

// BalanceSheetVM is the balance-sheet endpoint payload: the snapshot, the
// consistency result, and the derived ratios.
type BalanceSheetVM struct {
	AsOf       string `json:"as_of"`
	PondFilter string `json:"pond_filter"`

	Assets struct {
		Current struct {
			Cash               MoneyVM `json:"cash"`
			AccountsReceivable MoneyVM `json:"accounts_receivable"`
			Inventory          MoneyVM `json:"inventory"`
			FishBiomass        MoneyVM `json:"fish_biomass"`
			Total              MoneyVM `json:"total"`
		} `json:"current"`
		Fixed struct {
			Equipment MoneyVM `json:"equipment"`
			Total     MoneyVM `json:"total"`
		} `json:"fixed"`
		Total MoneyVM `json:"total"`
	} `json:"assets"`

	Liabilities struct {
		Current struct {
			AccountsPayable MoneyVM `json:"accounts_payable"`
			AccruedPayroll  MoneyVM `json:"accrued_payroll"`
			Total           MoneyVM `json:"total"`
		} `json:"current"`
		Total MoneyVM `json:"total"`
	} `json:"liabilities"`

	Equity struct {
		CapitalInvestment MoneyVM `json:"capital_investment"`
		RetainedEarnings  MoneyVM `json:"retained_earnings"`
		Total             MoneyVM `json:"total"`
	} `json:"equity"`

	Summary struct {
		TotalAssets      MoneyVM `json:"total_assets"`
		TotalLiabilities MoneyVM `json:"total_liabilities"`
		TotalEquity      MoneyVM `json:"total_equity"`
		BalanceDelta     MoneyVM `json:"balance_delta"`
		Balanced         bool    `json:"balanced"`
		MissingAmounts   int     `json:"missing_amounts"`
	} `json:"summary"`

	Ratios struct {
		CurrentRatio       RatioVM `json:"current_ratio"`
		DebtToEquity       RatioVM `json:"debt_to_equity"`
		EquityRatioPercent RatioVM `json:"equity_ratio_percent"`
	} `json:"ratios"`
}

// NewBalanceSheetVM maps a snapshot and its derived results into the API
// payload.
func NewBalanceSheetVM(s Snapshot, check CheckResult, ratios RatioSet) BalanceSheetVM {
	var vm BalanceSheetVM
	vm.AsOf = s.AsOf.Format("2006-01-02")
	if s.PondFilter.All() {
		vm.PondFilter = "all"
	} else {
		vm.PondFilter = strconv.FormatInt(s.PondFilter.PondID(), 10)
	}

	vm.Assets.Current.Cash = NewMoneyVM(s.Assets.Current.Cash)
	vm.Assets.Current.AccountsReceivable = NewMoneyVM(s.Assets.Current.AccountsReceivable)
	vm.Assets.Current.Inventory = NewMoneyVM(s.Assets.Current.Inventory)
	vm.Assets.Current.FishBiomass = NewMoneyVM(s.Assets.Current.FishBiomass)
	vm.Assets.Current.Total = NewMoneyVM(s.Assets.Current.Total)
	vm.Assets.Fixed.Equipment = NewMoneyVM(s.Assets.Fixed.Equipment)
	vm.Assets.Fixed.Total = NewMoneyVM(s.Assets.Fixed.Total)
	vm.Assets.Total = NewMoneyVM(s.Assets.Total)

	vm.Liabilities.Current.AccountsPayable = NewMoneyVM(s.Liabilities.Current.AccountsPayable)
	vm.Liabilities.Current.AccruedPayroll = NewMoneyVM(s.Liabilities.Current.AccruedPayroll)
	vm.Liabilities.Current.Total = NewMoneyVM(s.Liabilities.Current.Total)
	vm.Liabilities.Total = NewMoneyVM(s.Liabilities.Total)

	vm.Equity.CapitalInvestment = NewMoneyVM(s.Equity.CapitalInvestment)
	vm.Equity.RetainedEarnings = NewMoneyVM(s.Equity.RetainedEarnings)
	vm.Equity.Total = NewMoneyVM(s.Equity.Total)

	vm.Summary.TotalAssets = NewMoneyVM(s.Summary.TotalAssets)
	vm.Summary.TotalLiabilities = NewMoneyVM(s.Summary.TotalLiabilities)
	vm.Summary.TotalEquity = NewMoneyVM(s.Summary.TotalEquity)
	vm.Summary.BalanceDelta = NewMoneyVM(s.Summary.BalanceDelta)
	vm.Summary.Balanced = check.Balanced
	vm.Summary.MissingAmounts = s.MissingAmounts

	vm.Ratios.CurrentRatio = newRatioVM(ratios.CurrentRatio, 2)
	vm.Ratios.DebtToEquity = newRatioVM(ratios.DebtToEquity, 2)
	vm.Ratios.EquityRatioPercent = newRatioVM(ratios.EquityRatioPercent, 1)
	return vm
}

package accounts

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeIncome                AccountType = "Income"
	AccountTypeExpense               AccountType = "Expense"
	AccountTypeCOGS                  AccountType = "COGS"
	AccountTypeBank                  AccountType = "Bank"
	AccountTypeCreditCard            AccountType = "Credit Card"
	AccountTypeAccountsReceivable    AccountType = "Accounts Receivable"
	AccountTypeAccountsPayable       AccountType = "Accounts Payable"
	AccountTypeOtherCurrentAsset     AccountType = "Other Current Asset"
	AccountTypeOtherAsset            AccountType = "Other Asset"
	AccountTypeOtherCurrentLiability AccountType = "Other Current Liability"
	AccountTypeLongTermLiability     AccountType = "Long Term Liability"
	AccountTypeEquity                AccountType = "Equity"
	AccountTypeFixedAsset            AccountType = "Fixed Asset"
	AccountTypeOtherIncome           AccountType = "Other Income"
	AccountTypeOtherExpense          AccountType = "Other Expense"
)

// NormalSide is the side on which an account's balance normally increases.
type NormalSide int

const (
	DebitNormal NormalSide = iota
	CreditNormal
)

// Account models a chart of accounts node. The parent graph forms a forest;
// BuildTree rejects cycles and unresolved parents.
type Account struct {
	ID       int64
	Code     string
	Name     string
	Type     AccountType
	ParentID *int64
	Active   bool
}

// Side returns the normal balance side for the account's type. Asset and
// expense categories grow with debits; liability, equity and income
// categories grow with credits.
func (a Account) Side() NormalSide {
	switch a.Type {
	case AccountTypeBank,
		AccountTypeAccountsReceivable,
		AccountTypeOtherCurrentAsset,
		AccountTypeOtherAsset,
		AccountTypeFixedAsset,
		AccountTypeExpense,
		AccountTypeCOGS,
		AccountTypeOtherExpense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

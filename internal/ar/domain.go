// Package ar holds the accounts-receivable source records: customer invoices
// and the payments received against them. The accounting engine only reads
// these records; creation and settlement live upstream.
package ar

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one line of a customer invoice. Fish sale lines carry the
// harvested weight and per-unit rate used for the biomass valuation.
type InvoiceLine struct {
	ID           int64
	InvoiceID    int64
	ItemID       int64
	ItemCategory string
	Quantity     decimal.Decimal
	Rate         decimal.Decimal
	TotalWeight  decimal.Decimal
	PondID       *int64
}

// Invoice model.
type Invoice struct {
	ID          int64
	Number      string
	CustomerID  int64
	Date        time.Time
	Total       decimal.Decimal
	OpenBalance decimal.Decimal
	PondID      *int64
	Lines       []InvoiceLine

	// MissingAmounts counts monetary columns that were NULL at load time.
	MissingAmounts int
}

// CustomerPayment records money received from a customer into a deposit
// account.
type CustomerPayment struct {
	ID               int64
	CustomerID       int64
	DepositAccountID int64
	Date             time.Time
	Amount           decimal.Decimal

	MissingAmounts int
}

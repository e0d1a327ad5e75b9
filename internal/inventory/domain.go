// Package inventory holds the item catalog. Stock valuations feed the
// inventory and equipment lines of the balance sheet.
package inventory

import "github.com/shopspring/decimal"

// ItemCategory enumerates stock categories.
type ItemCategory string

const (
	CategoryFish      ItemCategory = "fish"
	CategoryFeed      ItemCategory = "feed"
	CategoryMedicine  ItemCategory = "medicine"
	CategoryEquipment ItemCategory = "equipment"
)

// Item model.
type Item struct {
	ID           int64
	Name         string
	Category     ItemCategory
	CurrentStock decimal.Decimal
	CostPrice    decimal.Decimal
	PondID       *int64

	MissingAmounts int
}

// StockValue is the carrying value of the item: current stock times cost.
func (i Item) StockValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.CostPrice)
}

package types

import (
	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// Order is a single trading decision returned by a strategy. Orders are
// consumed once by the ledger and never mutated after creation.
type Order struct {
	Symbol   string
	Quantity decimal.Decimal
	Side     Side
}

func NewOrder(symbol string, quantity decimal.Decimal, side Side) Order {
	return Order{
		Symbol:   symbol,
		Quantity: quantity,
		Side:     side,
	}
}

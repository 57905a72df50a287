// Package buyhold implements the simplest useful strategy: spend a fixed
// cash slice on each symbol the first day it shows a price, then hold until
// the end of the run.
package buyhold

import (
	"sort"

	"github.com/shopspring/decimal"

	"alphaback/types"
)

var defaultSlice = decimal.NewFromInt(10000)

type Strategy struct {
	slice  decimal.Decimal
	bought map[string]bool
}

func New() *Strategy {
	return NewWithSlice(defaultSlice)
}

// NewWithSlice sets the cash amount spent per symbol.
func NewWithSlice(slice decimal.Decimal) *Strategy {
	return &Strategy{
		slice:  slice,
		bought: make(map[string]bool),
	}
}

func (s *Strategy) Decide(state types.StrategyState) ([]types.Order, error) {
	// Iterate symbols in sorted order so runs are deterministic.
	symbols := make([]string, 0, len(state.Prices))
	for sym := range state.Prices {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var orders []types.Order
	for _, sym := range symbols {
		if s.bought[sym] {
			continue
		}
		price := state.Prices[sym]
		if !price.IsPositive() {
			continue
		}
		orders = append(orders, types.NewOrder(sym, s.slice.Div(price), types.SideTypeBuy))
		s.bought[sym] = true
	}
	return orders, nil
}

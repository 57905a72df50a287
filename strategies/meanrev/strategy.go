// Package meanrev trades against short-term moves: buy when today's close is
// below the trailing mean by more than the threshold, sell the whole
// position when it is above by the same margin.
package meanrev

import (
	"sort"

	"github.com/shopspring/decimal"

	"alphaback/types"
)

const defaultWindow = 5

var (
	defaultThreshold = decimal.NewFromFloat(0.03)
	defaultQuantity  = decimal.NewFromInt(10)
	one              = decimal.NewFromInt(1)
)

type Strategy struct {
	window    int
	threshold decimal.Decimal
	quantity  decimal.Decimal

	// per-symbol close history, oldest first
	history map[string][]decimal.Decimal
}

func New() *Strategy {
	return &Strategy{
		window:    defaultWindow,
		threshold: defaultThreshold,
		quantity:  defaultQuantity,
		history:   make(map[string][]decimal.Decimal),
	}
}

func (s *Strategy) Decide(state types.StrategyState) ([]types.Order, error) {
	symbols := make([]string, 0, len(state.Prices))
	for sym := range state.Prices {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var orders []types.Order
	for _, sym := range symbols {
		close := state.Prices[sym]
		hist := append(s.history[sym], close)
		s.history[sym] = hist

		if len(hist) < s.window {
			continue
		}

		mean := trailingMean(hist[len(hist)-s.window:])
		lower := mean.Mul(one.Sub(s.threshold))
		upper := mean.Mul(one.Add(s.threshold))

		switch {
		case close.LessThan(lower):
			orders = append(orders, types.NewOrder(sym, s.quantity, types.SideTypeBuy))
		case close.GreaterThan(upper):
			if held := state.Holdings[sym]; held.IsPositive() {
				orders = append(orders, types.NewOrder(sym, held, types.SideTypeSell))
			}
		}
	}
	return orders, nil
}

func trailingMean(closes []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range closes {
		sum = sum.Add(c)
	}
	return sum.Div(decimal.NewFromInt(int64(len(closes))))
}

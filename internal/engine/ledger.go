package engine

import (
	"github.com/shopspring/decimal"

	"alphaback/types"
)

// PriceLookup resolves the execution price for a symbol. The second return
// is false when no price for the symbol has ever been seen, in which case
// the order is unfillable and must not touch the ledger.
type PriceLookup func(symbol string) (decimal.Decimal, bool)

// Ledger owns the cash and holdings of a single simulation run. Apply is the
// only mutator. Invariants held at all times: cash never goes negative,
// every stored holding quantity is strictly positive, and a quantity that
// reaches zero is removed rather than stored.
type Ledger struct {
	cash     decimal.Decimal
	holdings map[string]decimal.Decimal
}

func NewLedger(startingCash decimal.Decimal) *Ledger {
	return &Ledger{
		cash:     startingCash,
		holdings: make(map[string]decimal.Decimal),
	}
}

// Apply executes one order against the ledger and reports whether it was
// applied. Buys are all-or-nothing: an order the cash balance cannot cover
// leaves the ledger untouched. Sells are clamped to the held quantity, so
// shorting is impossible by construction and an over-sized sell never fails.
// Callers log the order either way; the decision log records requests, not
// executions.
func (l *Ledger) Apply(order types.Order, price PriceLookup) bool {
	px, ok := price(order.Symbol)
	if !ok {
		return false
	}

	switch order.Side {
	case types.SideTypeBuy:
		cost := order.Quantity.Mul(px)
		if l.cash.LessThan(cost) {
			return false
		}
		l.cash = l.cash.Sub(cost)
		if order.Quantity.IsPositive() {
			l.holdings[order.Symbol] = l.holdings[order.Symbol].Add(order.Quantity)
		}
		return true

	case types.SideTypeSell:
		held := l.holdings[order.Symbol]
		qty := decimal.Min(held, order.Quantity)
		l.cash = l.cash.Add(qty.Mul(px))
		remaining := held.Sub(qty)
		if remaining.IsPositive() {
			l.holdings[order.Symbol] = remaining
		} else {
			delete(l.holdings, order.Symbol)
		}
		return true
	}
	return false
}

func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// Holdings returns a copy. Strategies receive this view every day and must
// never be able to reach the live map.
func (l *Ledger) Holdings() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.holdings))
	for sym, qty := range l.holdings {
		out[sym] = qty
	}
	return out
}

// Value marks every holding at the given per-symbol prices and adds cash.
// A symbol without a mark contributes nothing.
func (l *Ledger) Value(marks map[string]decimal.Decimal) decimal.Decimal {
	total := l.cash
	for sym, qty := range l.holdings {
		total = total.Add(qty.Mul(marks[sym]))
	}
	return total
}

package types

import (
	"github.com/shopspring/decimal"
)

// StrategyState is the read-only view of one trading day handed to a
// strategy: the day's close prices and a copy of the current holdings. Both
// maps are defensive copies; mutating them has no effect on the ledger.
type StrategyState struct {
	Prices   map[string]decimal.Decimal
	Holdings map[string]decimal.Decimal
}

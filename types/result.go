package types

import (
	"github.com/shopspring/decimal"
)

// Decision is one log entry for an order a strategy requested. Every
// requested order is logged, including buys rejected for insufficient cash;
// the log is an audit of decisions, not of executions.
type Decision struct {
	Date     string          `json:"date"`
	Symbol   string          `json:"instrument"`
	Quantity decimal.Decimal `json:"quantity"`
	IsBuy    bool            `json:"isBuy"`
}

// SimulationResult is the terminal report of one completed run. A failed run
// produces no result at all, only an error.
type SimulationResult struct {
	Status          string          `json:"status"`
	StartingCapital decimal.Decimal `json:"startingCapital"`
	EndingCapital   decimal.Decimal `json:"endingCapital"`
	GainPercentage  decimal.Decimal `json:"gainPercentage"`
	Decisions       []Decision      `json:"decisions"`
}

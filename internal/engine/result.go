package engine

import (
	"github.com/shopspring/decimal"

	"alphaback/types"
)

// StatusOK is the only status a completed run ever reports. Failed runs
// surface as errors, never as a result with a different status.
const StatusOK = "OK"

var hundred = decimal.NewFromInt(100)

func buildResult(startingCapital decimal.Decimal, ledger *Ledger, lastKnown map[string]decimal.Decimal, decisions []types.Decision) *types.SimulationResult {
	ending := ledger.Value(lastKnown)

	gain := decimal.Zero
	if startingCapital.IsPositive() {
		gain = ending.Sub(startingCapital).Div(startingCapital).Mul(hundred)
	}

	if decisions == nil {
		decisions = []types.Decision{}
	}
	return &types.SimulationResult{
		Status:          StatusOK,
		StartingCapital: startingCapital,
		EndingCapital:   ending,
		GainPercentage:  gain,
		Decisions:       decisions,
	}
}

package engine

import (
	"alphaback/types"
)

// Strategy is the capability every strategy implementation must satisfy. It
// is invoked once per trading day with that day's state and returns the
// orders it wants executed, oldest-priority first. Returning a nil slice
// means "no orders". Implementations are untrusted: the engine copies every
// map it hands over, bounds each call with a time budget, and treats an
// error, panic or timeout as fatal for the whole run.
type Strategy interface {
	Decide(state types.StrategyState) ([]types.Order, error)
}

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"alphaback/types"
)

// DefaultStartingCapital matches the original service's fixed bankroll.
const DefaultStartingCapital = 100000

// DefaultDecideTimeout bounds a single strategy invocation.
const DefaultDecideTimeout = 5 * time.Second

type phase int

const (
	phaseInit phase = iota
	phaseRunning
	phaseDone
	phaseFailed
)

// Engine replays daily price histories through a strategy and keeps the
// authoritative ledger for the run. One Engine drives exactly one run at a
// time; the strategy instance it wraps may carry state across days, so
// engines are not reused across runs.
type Engine struct {
	strategy        Strategy
	startingCapital decimal.Decimal
	decideTimeout   time.Duration
	progress        func(day string)

	phase phase
}

type Option func(*Engine)

func WithStartingCapital(c decimal.Decimal) Option {
	return func(e *Engine) { e.startingCapital = c }
}

// WithDecideTimeout overrides the per-call time budget. Zero disables the
// budget entirely.
func WithDecideTimeout(d time.Duration) Option {
	return func(e *Engine) { e.decideTimeout = d }
}

// WithProgress installs a callback invoked once per trading day, in order.
func WithProgress(fn func(day string)) Option {
	return func(e *Engine) { e.progress = fn }
}

// New verifies that the boxed instance the loader resolved actually satisfies
// the Strategy contract. The check happens exactly once, here, so a mismatch
// fails the run before any day is processed instead of deep inside the loop.
func New(strategy any, opts ...Option) (*Engine, error) {
	s, ok := strategy.(Strategy)
	if !ok {
		return nil, fmt.Errorf("%T: %w", strategy, ErrStrategyContract)
	}
	e := &Engine{
		strategy:        s,
		startingCapital: decimal.NewFromInt(DefaultStartingCapital),
		decideTimeout:   DefaultDecideTimeout,
		phase:           phaseInit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run replays every trading day in the feeds, strictly ascending, and
// returns the final report. Any strategy failure aborts the run: no partial
// result is returned and decisions recorded so far are discarded.
func (e *Engine) Run(ctx context.Context, feeds []types.PriceSeries) (*types.SimulationResult, error) {
	if e.phase != phaseInit {
		return nil, fmt.Errorf("engine already ran; create a new engine per run")
	}

	aligned := alignSeries(feeds)
	ledger := NewLedger(e.startingCapital)
	var decisions []types.Decision

	e.phase = phaseRunning
	for _, day := range aligned.days {
		if e.progress != nil {
			e.progress(day)
		}

		snapshot := aligned.snapshotOf(day)
		if len(snapshot) == 0 {
			// No instrument has a price today, so no order could execute.
			continue
		}

		orders, err := e.decide(ctx, types.StrategyState{
			Prices:   copyPrices(snapshot),
			Holdings: ledger.Holdings(),
		})
		if err != nil {
			e.phase = phaseFailed
			return nil, err
		}

		lookup := func(symbol string) (decimal.Decimal, bool) {
			if px, ok := snapshot[symbol]; ok {
				return px, true
			}
			if px, ok := aligned.lastKnown[symbol]; ok {
				return px, true
			}
			return decimal.Zero, false
		}

		for _, order := range orders {
			if err := validateOrder(order); err != nil {
				e.phase = phaseFailed
				return nil, err
			}
			ledger.Apply(order, lookup)
			decisions = append(decisions, types.Decision{
				Date:     day,
				Symbol:   order.Symbol,
				Quantity: order.Quantity,
				IsBuy:    order.Side == types.SideTypeBuy,
			})
		}
	}

	e.phase = phaseDone
	return buildResult(e.startingCapital, ledger, aligned.lastKnown, decisions), nil
}

// decide invokes the strategy under the configured time budget. The call
// itself cannot be interrupted; on timeout the pending result is abandoned
// and the run fails exactly as if the strategy had returned an error.
func (e *Engine) decide(ctx context.Context, state types.StrategyState) ([]types.Order, error) {
	type outcome struct {
		orders []types.Order
		err    error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("%w: panic: %v", ErrStrategyExecution, r)}
			}
		}()
		orders, err := e.strategy.Decide(state)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrStrategyExecution, err)
		}
		ch <- outcome{orders: orders, err: err}
	}()

	var deadline <-chan time.Time
	if e.decideTimeout > 0 {
		timer := time.NewTimer(e.decideTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case out := <-ch:
		return out.orders, out.err
	case <-deadline:
		return nil, fmt.Errorf("%w (%s)", ErrDecideTimeout, e.decideTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func validateOrder(o types.Order) error {
	switch {
	case o.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrMalformedOrder)
	case o.Quantity.IsNegative():
		return fmt.Errorf("%w: negative quantity %s for %s", ErrMalformedOrder, o.Quantity, o.Symbol)
	case o.Side != types.SideTypeBuy && o.Side != types.SideTypeSell:
		return fmt.Errorf("%w: unknown side %q for %s", ErrMalformedOrder, o.Side, o.Symbol)
	}
	return nil
}

func copyPrices(snapshot map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(snapshot))
	for sym, px := range snapshot {
		out[sym] = px
	}
	return out
}

package engine

import "errors"

// Global error declarations.
var (
	ErrStrategyContract  = errors.New("resolved strategy does not satisfy the strategy contract")
	ErrStrategyExecution = errors.New("strategy execution failed")
	ErrDecideTimeout     = errors.New("strategy exceeded its decide time budget")
	ErrMalformedOrder    = errors.New("strategy returned a malformed order")
)

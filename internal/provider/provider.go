// Package provider retrieves historical close-price series from the remote
// data feed. The transport and payload shape are opaque to the simulation
// core; this package's job is to turn whatever the feed returns into a
// types.PriceSeries or fail with ErrBadPriceFeed when the payload is
// structurally unusable.
package provider

import (
	"context"
	"errors"

	"alphaback/types"
)

// ErrBadPriceFeed means the whole feed response was unusable, not a
// single missing field. It fails the run before any simulation is attempted.
var ErrBadPriceFeed = errors.New("price feed payload unusable")

type Provider interface {
	Fetch(ctx context.Context, symbol string, granularity types.Granularity) (types.PriceSeries, error)
}

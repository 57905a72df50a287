package provider

import (
	"context"

	log "github.com/sirupsen/logrus"

	"alphaback/types"
)

// SeriesStore is the persistence surface the cache needs. Satisfied by
// repository.Database.
type SeriesStore interface {
	GetDailyCloses(ctx context.Context, symbol string) (types.PriceSeries, error)
	SaveDailyCloses(ctx context.Context, series types.PriceSeries) error
}

// Cached serves daily series from the store when present and falls back to
// the wrapped provider, persisting what it fetched. Only the daily
// granularity is cached; everything else passes straight through.
type Cached struct {
	inner Provider
	store SeriesStore
}

func NewCached(inner Provider, store SeriesStore) *Cached {
	return &Cached{inner: inner, store: store}
}

func (c *Cached) Fetch(ctx context.Context, symbol string, granularity types.Granularity) (types.PriceSeries, error) {
	if granularity == "" {
		granularity = types.GranularityDaily
	}
	if granularity != types.GranularityDaily {
		return c.inner.Fetch(ctx, symbol, granularity)
	}

	if series, err := c.store.GetDailyCloses(ctx, symbol); err == nil && len(series.Closes) > 0 {
		return series, nil
	}

	series, err := c.inner.Fetch(ctx, symbol, granularity)
	if err != nil {
		return types.PriceSeries{}, err
	}
	if err := c.store.SaveDailyCloses(ctx, series); err != nil {
		// A cache write failure must not fail the simulation.
		log.WithError(err).WithField("symbol", symbol).Warn("failed to cache price series")
	}
	return series, nil
}

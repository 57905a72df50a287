package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"alphaback/types"
)

// GetDailyCloses returns the cached daily series for a symbol, oldest first.
func (db *Database) GetDailyCloses(ctx context.Context, symbol string) (types.PriceSeries, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT day, close FROM daily_closes WHERE symbol = $1 ORDER BY day`, symbol)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("query daily closes for %s: %w", symbol, err)
	}
	defer rows.Close()

	series := types.PriceSeries{
		Symbol: symbol,
		Closes: make(map[string]string),
	}
	for rows.Next() {
		var day string
		var close decimal.Decimal
		if err := rows.Scan(&day, &close); err != nil {
			return types.PriceSeries{}, fmt.Errorf("scan daily close: %w", err)
		}
		series.Closes[day] = close.String()
	}
	if err := rows.Err(); err != nil {
		return types.PriceSeries{}, err
	}
	if len(series.Closes) == 0 {
		return types.PriceSeries{}, fmt.Errorf("symbol %s: %w", symbol, ErrSeriesNotFound)
	}
	return series, nil
}

// SaveDailyCloses upserts every parseable close of the series. Raw values the
// feed returned that do not parse as a non-negative decimal are skipped; the
// cache only ever holds real prices.
func (db *Database) SaveDailyCloses(ctx context.Context, series types.PriceSeries) error {
	batch := &pgx.Batch{}
	for day, raw := range series.Closes {
		px, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || px.IsNegative() {
			continue
		}
		batch.Queue(`
			INSERT INTO daily_closes (symbol, day, close) VALUES ($1, $2, $3)
			ON CONFLICT (symbol, day) DO UPDATE SET close = EXCLUDED.close`,
			series.Symbol, day, px)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := db.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save daily closes for %s: %w", series.Symbol, err)
	}
	return nil
}

package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"alphaback/types"
)

// alignedSeries is the chronological merge of every per-symbol price history:
// the ascending union of all trading days, a per-day snapshot of parseable
// closes, and each symbol's own last known price. Instruments with series of
// different lengths are valued at their own last date, not the global one.
type alignedSeries struct {
	days      []string
	snapshots map[string]map[string]decimal.Decimal
	lastKnown map[string]decimal.Decimal
}

func alignSeries(feeds []types.PriceSeries) alignedSeries {
	out := alignedSeries{
		snapshots: make(map[string]map[string]decimal.Decimal),
		lastKnown: make(map[string]decimal.Decimal),
	}

	daySet := make(map[string]struct{})
	for _, feed := range feeds {
		lastDate := ""
		for date, raw := range feed.Closes {
			// Every date in the series counts toward the union, even when its
			// close turns out to be unusable.
			daySet[date] = struct{}{}

			price, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil || price.IsNegative() {
				// No data for this symbol on this day. Non-fatal.
				continue
			}

			snap := out.snapshots[date]
			if snap == nil {
				snap = make(map[string]decimal.Decimal)
				out.snapshots[date] = snap
			}
			snap[feed.Symbol] = price

			if date > lastDate {
				lastDate = date
				out.lastKnown[feed.Symbol] = price
			}
		}
	}

	out.days = make([]string, 0, len(daySet))
	for day := range daySet {
		out.days = append(out.days, day)
	}
	sort.Strings(out.days)
	return out
}

// snapshotOf returns the close prices known for one day. A day present in
// the union but without any parseable close yields an empty snapshot.
func (a alignedSeries) snapshotOf(day string) map[string]decimal.Decimal {
	return a.snapshots[day]
}

package engine

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"alphaback/types"
)

func TestAlignSeriesUnionOfDays(t *testing.T) {
	feeds := []types.PriceSeries{
		{Symbol: "X", Closes: map[string]string{
			"2024-01-03": "12",
			"2024-01-01": "10",
		}},
		{Symbol: "Y", Closes: map[string]string{
			"2024-01-02": "20",
			"2024-01-04": "22",
		}},
	}

	aligned := alignSeries(feeds)

	wantDays := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	if !reflect.DeepEqual(aligned.days, wantDays) {
		t.Errorf("days = %v, want %v", aligned.days, wantDays)
	}

	snap := aligned.snapshotOf("2024-01-02")
	if len(snap) != 1 || !snap["Y"].Equal(decimal.NewFromInt(20)) {
		t.Errorf("snapshot on 2024-01-02 = %v, want only Y=20", snap)
	}
}

func TestAlignSeriesUnparseableCloseIsMissingData(t *testing.T) {
	feeds := []types.PriceSeries{
		{Symbol: "X", Closes: map[string]string{
			"2024-01-01": "10",
			"2024-01-02": "",
			"2024-01-03": "not-a-number",
			"2024-01-04": "-5",
		}},
	}

	aligned := alignSeries(feeds)

	// Every date stays in the union, even when the close is unusable.
	if len(aligned.days) != 4 {
		t.Fatalf("days = %v, want all 4 dates", aligned.days)
	}
	for _, day := range []string{"2024-01-02", "2024-01-03", "2024-01-04"} {
		if snap := aligned.snapshotOf(day); len(snap) != 0 {
			t.Errorf("snapshot on %s = %v, want empty", day, snap)
		}
	}
}

func TestAlignSeriesLastKnownIsPerSymbol(t *testing.T) {
	feeds := []types.PriceSeries{
		// X's series ends a day before Y's.
		{Symbol: "X", Closes: map[string]string{
			"2024-01-01": "10",
			"2024-01-02": "11",
		}},
		{Symbol: "Y", Closes: map[string]string{
			"2024-01-01": "100",
			"2024-01-03": "103",
		}},
	}

	aligned := alignSeries(feeds)

	if !aligned.lastKnown["X"].Equal(decimal.NewFromInt(11)) {
		t.Errorf("lastKnown[X] = %s, want 11 (X's own last date, not the global one)", aligned.lastKnown["X"])
	}
	if !aligned.lastKnown["Y"].Equal(decimal.NewFromInt(103)) {
		t.Errorf("lastKnown[Y] = %s, want 103", aligned.lastKnown["Y"])
	}
}

func TestAlignSeriesLastKnownSkipsUnparseableTail(t *testing.T) {
	feeds := []types.PriceSeries{
		{Symbol: "X", Closes: map[string]string{
			"2024-01-01": "10",
			"2024-01-02": "n/a",
		}},
	}

	aligned := alignSeries(feeds)

	if !aligned.lastKnown["X"].Equal(decimal.NewFromInt(10)) {
		t.Errorf("lastKnown[X] = %s, want 10 (last parseable close)", aligned.lastKnown["X"])
	}
}

func TestAlignSeriesEmptyInput(t *testing.T) {
	aligned := alignSeries(nil)
	if len(aligned.days) != 0 {
		t.Errorf("days = %v, want none", aligned.days)
	}
	if len(aligned.lastKnown) != 0 {
		t.Errorf("lastKnown = %v, want empty", aligned.lastKnown)
	}
}

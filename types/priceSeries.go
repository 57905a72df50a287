package types

// Granularity selects the resolution of the upstream price feed. Only the
// daily series carries simulation semantics; the rest exist because the
// provider accepts them verbatim.
type Granularity string

const (
	GranularityDaily   Granularity = "TIME_SERIES_DAILY"
	GranularityWeekly  Granularity = "TIME_SERIES_WEEKLY"
	GranularityMonthly Granularity = "TIME_SERIES_MONTHLY"
)

// PriceSeries is one instrument's close-price history keyed by ISO date
// (YYYY-MM-DD, so lexical order is chronological order). Closes are kept as
// the raw strings the feed returned; parsing is the aligner's job, and an
// unparseable close means "no data for that day", never an error. A day whose
// close is missing entirely is stored as the empty string so the day still
// counts toward the union of trading days.
type PriceSeries struct {
	Symbol string
	Closes map[string]string
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"alphaback/types"
)

const defaultHTTPTimeout = 30 * time.Second

// AlphaVantage fetches daily series from an Alpha-Vantage-shaped endpoint:
// GET {base}/query?function=TIME_SERIES_DAILY&symbol=X&apikey=K. The client
// is an explicit dependency so concurrent simulations can share a pooled one.
type AlphaVantage struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAlphaVantage(baseURL, apiKey string, client *http.Client) *AlphaVantage {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &AlphaVantage{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (av *AlphaVantage) Fetch(ctx context.Context, symbol string, granularity types.Granularity) (types.PriceSeries, error) {
	if granularity == "" {
		granularity = types.GranularityDaily
	}

	q := url.Values{}
	q.Set("function", string(granularity))
	q.Set("symbol", symbol)
	if av.apiKey != "" {
		q.Set("apikey", av.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, av.baseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := av.client.Do(req)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.PriceSeries{}, fmt.Errorf("fetch %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var root map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return types.PriceSeries{}, fmt.Errorf("%w: %v", ErrBadPriceFeed, err)
	}
	return parseSeries(root, symbol)
}

// parseSeries navigates the feed payload. The feed sometimes wraps the whole
// document under a top-level "data" key, names its series object anything
// containing "time series", and spells the close field either "4. close" or
// "close". All of that is tolerated; a payload with no series object at all
// is malformed.
func parseSeries(root map[string]json.RawMessage, requested string) (types.PriceSeries, error) {
	if wrapped, ok := root["data"]; ok {
		inner := make(map[string]json.RawMessage)
		if err := json.Unmarshal(wrapped, &inner); err == nil {
			root = inner
		}
	}

	var tsRaw json.RawMessage
	for key, raw := range root {
		if strings.Contains(strings.ToLower(key), "time series") {
			tsRaw = raw
			break
		}
	}
	if tsRaw == nil {
		tsRaw = root["Time Series (Daily)"]
	}
	if tsRaw == nil {
		return types.PriceSeries{}, fmt.Errorf("%w: no time series object", ErrBadPriceFeed)
	}

	var days map[string]map[string]any
	if err := json.Unmarshal(tsRaw, &days); err != nil {
		return types.PriceSeries{}, fmt.Errorf("%w: %v", ErrBadPriceFeed, err)
	}

	series := types.PriceSeries{
		Symbol: metaSymbol(root, requested),
		Closes: make(map[string]string, len(days)),
	}
	for date, fields := range days {
		series.Closes[date] = closeOf(fields)
	}
	return series, nil
}

func metaSymbol(root map[string]json.RawMessage, fallback string) string {
	raw, ok := root["Meta Data"]
	if !ok {
		return fallback
	}
	var meta map[string]string
	if err := json.Unmarshal(raw, &meta); err != nil {
		return fallback
	}
	if sym := meta["2. Symbol"]; sym != "" {
		return sym
	}
	return fallback
}

// closeOf extracts the close field as a raw string; the empty string marks a
// day with no usable close, which the aligner treats as missing data.
func closeOf(fields map[string]any) string {
	v, ok := fields["4. close"]
	if !ok {
		v, ok = fields["close"]
	}
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

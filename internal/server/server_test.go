package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alphaback/internal/provider"
	"alphaback/internal/registry"
	"alphaback/types"
)

type stubProvider struct {
	series map[string]types.PriceSeries
	err    error
}

func (s *stubProvider) Fetch(ctx context.Context, symbol string, granularity types.Granularity) (types.PriceSeries, error) {
	if s.err != nil {
		return types.PriceSeries{}, s.err
	}
	return s.series[symbol], nil
}

type buyOnceStrategy struct {
	bought bool
}

func (s *buyOnceStrategy) Decide(state types.StrategyState) ([]types.Order, error) {
	if s.bought {
		return nil, nil
	}
	s.bought = true
	return []types.Order{types.NewOrder("X", decimal.NewFromInt(10), types.SideTypeBuy)}, nil
}

type erroringStrategy struct{}

func (erroringStrategy) Decide(types.StrategyState) ([]types.Order, error) {
	return nil, errors.New("boom")
}

func newTestServer(p provider.Provider) *Server {
	r := registry.New("")
	r.Register("buyonce", func() any { return &buyOnceStrategy{} })
	r.Register("erroring", func() any { return erroringStrategy{} })
	r.Register("broken-contract", func() any { return struct{}{} })
	return New(p, r, decimal.NewFromInt(100000), time.Second)
}

func simulate(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestSimulateOK(t *testing.T) {
	srv := newTestServer(&stubProvider{series: map[string]types.PriceSeries{
		"X": {Symbol: "X", Closes: map[string]string{
			"2024-01-01": "10", "2024-01-02": "20",
		}},
	}})

	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "buyonce"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result types.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, "OK", result.Status)
	assert.True(t, result.StartingCapital.Equal(decimal.NewFromInt(100000)))
	// bought 10 @ 10, marked at 20: 99900 cash + 200
	assert.True(t, result.EndingCapital.Equal(decimal.NewFromInt(100100)),
		"endingCapital = %s", result.EndingCapital)
	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "X", result.Decisions[0].Symbol)
	assert.True(t, result.Decisions[0].IsBuy)
}

func TestSimulateCustomStartingCapital(t *testing.T) {
	srv := newTestServer(&stubProvider{series: map[string]types.PriceSeries{
		"X": {Symbol: "X", Closes: map[string]string{"2024-01-01": "10"}},
	}})

	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "buyonce", "startingCapital": 500}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.StartingCapital.Equal(decimal.NewFromInt(500)))
}

func TestSimulateBadRequests(t *testing.T) {
	srv := newTestServer(&stubProvider{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no instruments", `{"instruments": [], "strategy": "buyonce"}`},
		{"no strategy", `{"instruments": ["X"]}`},
		{"non-positive capital", `{"instruments": ["X"], "strategy": "buyonce", "startingCapital": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := simulate(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "bad_request", resp["type"])
		})
	}
}

func TestSimulateUnknownStrategy(t *testing.T) {
	srv := newTestServer(&stubProvider{})
	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "nope"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateStrategyContractMismatch(t *testing.T) {
	srv := newTestServer(&stubProvider{})
	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "broken-contract"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "strategy_resolution", resp["type"])
}

func TestSimulateProviderFailure(t *testing.T) {
	srv := newTestServer(&stubProvider{err: provider.ErrBadPriceFeed})
	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "buyonce"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSimulateStrategyExecutionFailure(t *testing.T) {
	srv := newTestServer(&stubProvider{series: map[string]types.PriceSeries{
		"X": {Symbol: "X", Closes: map[string]string{"2024-01-01": "10"}},
	}})
	rec := simulate(t, srv, `{"instruments": ["X"], "strategy": "erroring"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "strategy_execution", resp["type"])
}

func TestHello(t *testing.T) {
	srv := newTestServer(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/hello?name=Trader", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello Trader!", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/hello", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, "Hello World!", rec.Body.String())
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"alphaback/internal/engine"
	"alphaback/types"
)

type SimulateRequest struct {
	Instruments     []string `json:"instruments"`
	Strategy        string   `json:"strategy"`
	Granularity     string   `json:"granularity"`
	StartingCapital *float64 `json:"startingCapital"`
}

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func setResponse(response interface{}, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("encode response")
	}
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := errorResponse{Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.WithError(encodeErr).Error("encode error response")
	}
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := log.WithField("run_id", runID)

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("bad_request", http.StatusBadRequest, fmt.Errorf("decode request: %w", err), w)
		return
	}
	if len(req.Instruments) == 0 {
		setErrorResponse("bad_request", http.StatusBadRequest, errors.New("instruments must not be empty"), w)
		return
	}
	if req.Strategy == "" {
		setErrorResponse("bad_request", http.StatusBadRequest, errors.New("strategy must not be empty"), w)
		return
	}

	capital := s.defaultCapital
	if req.StartingCapital != nil {
		capital = decimal.NewFromFloat(*req.StartingCapital)
		if !capital.IsPositive() {
			setErrorResponse("bad_request", http.StatusBadRequest, errors.New("startingCapital must be positive"), w)
			return
		}
	}

	logger = logger.WithFields(log.Fields{
		"strategy":    req.Strategy,
		"instruments": req.Instruments,
	})

	boxed, err := s.registry.Resolve(req.Strategy)
	if err != nil {
		logger.WithError(err).Warn("strategy resolution failed")
		setErrorResponse("strategy_resolution", http.StatusNotFound, err, w)
		return
	}

	eng, err := engine.New(boxed,
		engine.WithStartingCapital(capital),
		engine.WithDecideTimeout(s.decideTimeout),
	)
	if err != nil {
		logger.WithError(err).Warn("strategy contract check failed")
		setErrorResponse("strategy_resolution", http.StatusNotFound, err, w)
		return
	}

	feeds := make([]types.PriceSeries, 0, len(req.Instruments))
	for _, symbol := range req.Instruments {
		series, err := s.provider.Fetch(r.Context(), symbol, types.Granularity(req.Granularity))
		if err != nil {
			logger.WithError(err).WithField("symbol", symbol).Error("price feed fetch failed")
			setErrorResponse("price_feed", http.StatusBadGateway, err, w)
			return
		}
		feeds = append(feeds, series)
	}

	result, err := eng.Run(r.Context(), feeds)
	if err != nil {
		logger.WithError(err).Error("simulation failed")
		setErrorResponse("strategy_execution", http.StatusInternalServerError, err, w)
		return
	}

	logger.WithFields(log.Fields{
		"gain_pct":  result.GainPercentage,
		"decisions": len(result.Decisions),
	}).Info("simulation finished")
	setResponse(result, w)
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "World"
	}
	fmt.Fprintf(w, "Hello %s!", name)
}

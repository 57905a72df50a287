// Package server exposes the simulation service over HTTP. The handlers are
// thin glue: decode the request, resolve the strategy, fetch the feeds, run
// the engine, encode the outcome. All simulation semantics live in
// internal/engine.
package server

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"alphaback/internal/provider"
	"alphaback/internal/registry"
)

type Server struct {
	provider       provider.Provider
	registry       *registry.Registry
	defaultCapital decimal.Decimal
	decideTimeout  time.Duration
}

func New(p provider.Provider, r *registry.Registry, defaultCapital decimal.Decimal, decideTimeout time.Duration) *Server {
	return &Server{
		provider:       p,
		registry:       r,
		defaultCapital: defaultCapital,
		decideTimeout:  decideTimeout,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/simulate", s.handleSimulate).Methods("POST")
	router.HandleFunc("/hello", s.handleHello).Methods("GET")
	return router
}

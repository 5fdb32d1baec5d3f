// Package server exposes the pricing engine over HTTP. Handlers are thin:
// they decode JSON, call the core and encode the result; errors from the
// core propagate untouched.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/data"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/engine"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/logger"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/pricing"
)

type Server struct {
	prov data.Provider
}

func New(prov data.Provider) *Server {
	return &Server{prov: prov}
}

// Router builds the route table:
//
//	GET  /health   liveness probe
//	POST /evaluate single-point evaluation of MarketParameters
//	POST /sweep    full run (current point + grid) from an engine config
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	r.HandleFunc("/sweep", s.handleSweep).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var params pricing.MarketParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	res, err := pricing.Evaluate(params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var cfg engine.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	logger.Infof("received /sweep request underlying=%q", cfg.Underlying)
	res, err := engine.NewEngine(&cfg, s.prov).Run(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encoding response: %v", err)
	}
}

// writeError maps invalid parameters to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var ipe *pricing.InvalidParameterError
	if errors.As(err, &ipe) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

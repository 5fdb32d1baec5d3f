package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/engine"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/pricing"
)

func newTestServer() *httptest.Server {
	return httptest.NewServer(New(nil).Router())
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body := `{"time_to_maturity":2,"strike":90,"spot":100,"volatility":0.2,"interest_rate":0.05}`
	resp, err := http.Post(srv.URL+"/evaluate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /evaluate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res pricing.PricingResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.CallPrice < 21 || res.CallPrice > 23 {
		t.Errorf("call price = %v, want ~22", res.CallPrice)
	}
}

func TestEvaluateRejectsInvalidParams(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body := `{"time_to_maturity":0,"strike":90,"spot":100,"volatility":0.2,"interest_rate":0.05}`
	resp, err := http.Post(srv.URL+"/evaluate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /evaluate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSweepEndpoint(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body := `{"time_to_maturity":1,"strike":100,"spot":100,"volatility":0.2,"interest_rate":0.05,"spot_points":3,"vol_points":2,"spot_min":90,"spot_max":110,"vol_min":0.1,"vol_max":0.3}`
	resp, err := http.Post(srv.URL+"/sweep", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /sweep: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res engine.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Sweep == nil || len(res.Sweep.CallPrice) != 2 || len(res.Sweep.CallPrice[0]) != 3 {
		t.Fatalf("unexpected sweep shape in %+v", res.Sweep)
	}
}

func TestSweepMethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sweep")
	if err != nil {
		t.Fatalf("GET /sweep: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

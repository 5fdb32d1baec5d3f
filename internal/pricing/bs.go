// Package pricing implements closed-form European option pricing and Greeks
// under the Black-Scholes model.
//
// The engine is a pure function: given a set of market parameters it returns
// an immutable PricingResult holding d1/d2, call/put prices, deltas and gamma.
// Nothing is cached between calls and no shared state is touched, so
// evaluations may run concurrently without synchronization.
package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the standard normal distribution used for Φ (CDF) and φ (PDF).
// distuv's implementation is erf-based and stable deep into the tails, which
// matters for far in/out-of-the-money inputs where |d1| can exceed 6.
var stdNormal = distuv.UnitNormal

// MarketParameters holds the five scalar inputs to one Black-Scholes
// evaluation. The value is immutable once constructed; Evaluate never
// modifies it.
type MarketParameters struct {
	TimeToMaturity float64 `json:"time_to_maturity"` // years, > 0
	Strike         float64 `json:"strike"`           // > 0
	Spot           float64 `json:"spot"`             // current underlying price, > 0
	Volatility     float64 `json:"volatility"`       // annualized, > 0
	InterestRate   float64 `json:"interest_rate"`    // annualized, continuously compounded, any real
}

// PricingResult is the output of a single evaluation.
//
// PutDelta is 1 − Φ(d1), the complement of the call delta. This is not the
// textbook put delta Φ(d1) − 1; callers needing a signed hedge ratio should
// use CallDelta − 1 instead.
type PricingResult struct {
	D1        float64 `json:"d1"`
	D2        float64 `json:"d2"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	CallDelta float64 `json:"call_delta"`
	PutDelta  float64 `json:"put_delta"`
	CallGamma float64 `json:"call_gamma"`
	PutGamma  float64 `json:"put_gamma"`
}

// InvalidParameterError reports a market parameter that makes d1/d2
// undefined (division by zero or log of a non-positive number). It is the
// only error kind the engine produces and is never recovered internally.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Validate checks the positivity invariants. TimeToMaturity, Strike, Spot and
// Volatility must all be strictly positive and finite; InterestRate may be
// any finite real, including negative.
func (p MarketParameters) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"time_to_maturity", p.TimeToMaturity},
		{"strike", p.Strike},
		{"spot", p.Spot},
		{"volatility", p.Volatility},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if c.value <= 0 {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: "must be positive"}
		}
	}
	if math.IsNaN(p.InterestRate) || math.IsInf(p.InterestRate, 0) {
		return &InvalidParameterError{Field: "interest_rate", Value: p.InterestRate, Reason: "must be finite"}
	}
	return nil
}

// Evaluate computes prices and Greeks for the given parameters:
//
//	d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2 = d1 − σ·√T
//	call = S·Φ(d1) − K·e^(−rT)·Φ(d2)
//	put  = K·e^(−rT)·Φ(−d2) − S·Φ(−d1)
//	callDelta = Φ(d1), putDelta = 1 − Φ(d1)
//	gamma = φ(d1) / (K·σ·√T)   (same for call and put)
//
// It fails with *InvalidParameterError when the inputs violate the
// positivity invariants; there are no other error paths.
func Evaluate(p MarketParameters) (PricingResult, error) {
	if err := p.Validate(); err != nil {
		return PricingResult{}, err
	}

	sqrtT := math.Sqrt(p.TimeToMaturity)
	volSqrtT := p.Volatility * sqrtT

	d1 := (math.Log(p.Spot/p.Strike) + (p.InterestRate+0.5*p.Volatility*p.Volatility)*p.TimeToMaturity) / volSqrtT
	d2 := d1 - volSqrtT

	discountedStrike := p.Strike * math.Exp(-p.InterestRate*p.TimeToMaturity)

	callDelta := stdNormal.CDF(d1)
	gamma := stdNormal.Prob(d1) / (p.Strike * volSqrtT)

	return PricingResult{
		D1:        d1,
		D2:        d2,
		CallPrice: p.Spot*callDelta - discountedStrike*stdNormal.CDF(d2),
		PutPrice:  discountedStrike*stdNormal.CDF(-d2) - p.Spot*stdNormal.CDF(-d1),
		CallDelta: callDelta,
		PutDelta:  1 - callDelta,
		CallGamma: gamma,
		PutGamma:  gamma,
	}, nil
}

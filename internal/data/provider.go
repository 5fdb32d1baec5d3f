// Package data provides market data providers used to seed pricing inputs.
//
// The pricing core itself is input-agnostic; providers exist so the CLI and
// REST layers can resolve a current spot price and a realized volatility for
// an underlying when the caller leaves them unset.
package data

import (
	"fmt"
	"math"
	"time"
)

// Provider supplies historical market data for an underlying.
type Provider interface {
	// Secondary returns an optional fallback provider, or nil.
	Secondary() Provider

	// GetDailyBars returns daily OHLC bars for the underlying between
	// fromDate and toDate inclusive, sorted ascending by date.
	GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error)
}

// Bar simplified OHLC
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// LatestClose returns the close of the most recent bar.
func LatestClose(bars []Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("no bars")
	}
	return bars[len(bars)-1].Close, nil
}

// ExtractCloses collects the close prices of a bar series in order.
func ExtractCloses(bars []Bar) []float64 {
	var closes []float64
	for _, b := range bars {
		closes = append(closes, b.Close)
	}
	return closes
}

// AnnualizedVolatility estimates annualized volatility from daily closes as
// the sample standard deviation of log returns scaled by sqrt(252). With
// fewer than two closes it falls back to 30%.
func AnnualizedVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0.30
	}
	var rets []float64
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	mean := 0.0
	for _, v := range rets {
		mean += v
	}
	mean /= float64(len(rets))
	sd := 0.0
	for _, v := range rets {
		sd += (v - mean) * (v - mean)
	}
	sd = math.Sqrt(sd / float64(len(rets)-1))
	return sd * math.Sqrt(252.0)
}

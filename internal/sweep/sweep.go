// Package sweep evaluates the pricing engine over a two-dimensional
// (spot × volatility) grid for downstream visualization.
//
// Matrices are row-major by volatility: cell [i][j] corresponds to
// VolAxis[i] and SpotAxis[j]. Cells are mutually independent, so rows are
// evaluated in parallel; each worker writes only its own row.
package sweep

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/pricing"
)

// DefaultPoints is the axis resolution used when the caller does not ask
// for a specific one.
const DefaultPoints = 10

// Axis is an ordered sequence of parameter values, ascending when built by
// NewAxis.
type Axis []float64

// NewAxis returns points evenly spaced values from min to max inclusive.
// With a single point the axis is just {min}.
func NewAxis(min, max float64, points int) (Axis, error) {
	if points <= 0 {
		return nil, &pricing.InvalidParameterError{Field: "axis_points", Value: float64(points), Reason: "must be positive"}
	}
	if math.IsNaN(min) || math.IsNaN(max) || max < min {
		return nil, &pricing.InvalidParameterError{Field: "axis_range", Value: max - min, Reason: "max must be >= min"}
	}
	if points == 1 {
		return Axis{min}, nil
	}
	ax := make(Axis, points)
	step := (max - min) / float64(points-1)
	for i := range ax {
		ax[i] = min + float64(i)*step
	}
	ax[points-1] = max // endpoint exact, independent of step rounding
	return ax, nil
}

// Matrix is a 2D grid of scalar outputs, indexed [volIndex][spotIndex].
type Matrix [][]float64

func newMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Request describes one sweep. Base supplies time to maturity and interest
// rate; spot and volatility are taken from the axes and the strike is fixed
// for the whole grid. Purchase prices are optional: when set, the
// corresponding P&L matrix is produced.
type Request struct {
	Base              pricing.MarketParameters
	Strike            float64
	SpotAxis          Axis
	VolAxis           Axis
	PurchasePriceCall *float64
	PurchasePricePut  *float64
}

// Result holds one matrix per requested output. All matrices share the same
// shape: len(VolAxis) rows by len(SpotAxis) columns. CallPnL/PutPnL are nil
// when the corresponding purchase price was not supplied.
type Result struct {
	SpotAxis  Axis   `json:"spot_axis"`
	VolAxis   Axis   `json:"vol_axis"`
	CallPrice Matrix `json:"call_price"`
	PutPrice  Matrix `json:"put_price"`
	CallPnL   Matrix `json:"call_pnl,omitempty"`
	PutPnL    Matrix `json:"put_pnl,omitempty"`
}

// Run evaluates the engine at every (volatility, spot) combination.
//
// P&L cells use intrinsic value at expiry, not the model price:
//
//	callPnL = max(0, spot − strike) − purchasePriceCall
//	putPnL  = max(0, strike − spot) − purchasePricePut
//
// so they answer "what is this position worth at expiration", while the
// price matrices answer "what is it worth now under the model".
//
// The first invalid cell aborts the whole sweep with *InvalidParameterError;
// no partial matrices are returned. Axes and the fixed parameters are
// validated before any worker starts.
func Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.SpotAxis) == 0 {
		return nil, &pricing.InvalidParameterError{Field: "spot_axis", Value: 0, Reason: "must not be empty"}
	}
	if len(req.VolAxis) == 0 {
		return nil, &pricing.InvalidParameterError{Field: "vol_axis", Value: 0, Reason: "must not be empty"}
	}
	// Validate the whole grid up front so workers cannot race an error
	// against partial writes.
	probe := req.Base
	probe.Strike = req.Strike
	probe.Spot = req.SpotAxis[0]
	probe.Volatility = req.VolAxis[0]
	if err := probe.Validate(); err != nil {
		return nil, err
	}
	for _, s := range req.SpotAxis {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, &pricing.InvalidParameterError{Field: "spot", Value: s, Reason: "must be positive"}
		}
	}
	for _, v := range req.VolAxis {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &pricing.InvalidParameterError{Field: "volatility", Value: v, Reason: "must be positive"}
		}
	}

	res := &Result{
		SpotAxis:  req.SpotAxis,
		VolAxis:   req.VolAxis,
		CallPrice: newMatrix(len(req.VolAxis), len(req.SpotAxis)),
		PutPrice:  newMatrix(len(req.VolAxis), len(req.SpotAxis)),
	}
	if req.PurchasePriceCall != nil {
		res.CallPnL = newMatrix(len(req.VolAxis), len(req.SpotAxis))
	}
	if req.PurchasePricePut != nil {
		res.PutPnL = newMatrix(len(req.VolAxis), len(req.SpotAxis))
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, vol := range req.VolAxis {
		i, vol := i, vol
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j, spot := range req.SpotAxis {
				params := pricing.MarketParameters{
					TimeToMaturity: req.Base.TimeToMaturity,
					Strike:         req.Strike,
					Spot:           spot,
					Volatility:     vol,
					InterestRate:   req.Base.InterestRate,
				}
				cell, err := pricing.Evaluate(params)
				if err != nil {
					return err
				}
				res.CallPrice[i][j] = cell.CallPrice
				res.PutPrice[i][j] = cell.PutPrice
				if res.CallPnL != nil {
					res.CallPnL[i][j] = math.Max(0, spot-req.Strike) - *req.PurchasePriceCall
				}
				if res.PutPnL != nil {
					res.PutPnL[i][j] = math.Max(0, req.Strike-spot) - *req.PurchasePricePut
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Package engine ties configuration, market data and the pricing core
// together: it resolves the market parameters for a run, evaluates the
// current point, sweeps the spot/volatility grid and returns everything a
// report writer or API response needs.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/data"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/logger"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/pricing"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/sweep"
)

// Config struct
type Config struct {
	Underlying        string   `json:"underlying,omitempty"`          // e.g. "AAPL"; only used with a data provider
	TimeToMaturity    float64  `json:"time_to_maturity"`              // years
	Strike            float64  `json:"strike"`                        // sweep strike and current-point strike
	Spot              float64  `json:"spot,omitempty"`                // 0 = resolve from provider
	Volatility        float64  `json:"volatility,omitempty"`          // 0 = resolve from provider (realized vol)
	InterestRate      float64  `json:"interest_rate"`                 // annualized, continuously compounded
	PurchasePriceCall *float64 `json:"purchase_price_call,omitempty"` // enables call P&L matrix
	PurchasePricePut  *float64 `json:"purchase_price_put,omitempty"`  // enables put P&L matrix
	SpotMin           float64  `json:"spot_min,omitempty"`            // 0 = spot * 0.8
	SpotMax           float64  `json:"spot_max,omitempty"`            // 0 = spot * 1.2
	SpotPoints        int      `json:"spot_points,omitempty"`         // 0 = 10
	VolMin            float64  `json:"vol_min,omitempty"`             // 0 = volatility * 0.5
	VolMax            float64  `json:"vol_max,omitempty"`             // 0 = volatility * 1.5
	VolPoints         int      `json:"vol_points,omitempty"`          // 0 = 10
	LookbackDays      int      `json:"lookback_days,omitempty"`       // history window for realized vol, 0 = 365
	ReportDir         string   `json:"report_dir,omitempty"`          // report directory
	Seed              int64    `json:"seed,omitempty"`                // seed for the synthetic provider
	Verbosity         int      `json:"verbosity,omitempty"`           // 0=errors,1=info,2=debug,3=trace
}

const (
	VerbosityError = iota // 0
	VerbosityInfo         // 1
	VerbosityDebug        // 2
	VerbosityTrace        // 3
)

// Result is one complete run: the resolved inputs, the current-point
// evaluation and the grid sweep.
type Result struct {
	RunID   string                   `json:"run_id"`
	Params  pricing.MarketParameters `json:"params"`
	Pricing pricing.PricingResult    `json:"pricing"`
	Sweep   *sweep.Result            `json:"sweep"`
}

type Engine struct {
	cfg  *Config
	prov data.Provider
}

func NewEngine(cfg *Config, prov data.Provider) *Engine {
	return &Engine{cfg: cfg, prov: prov}
}

// Run resolves parameters, evaluates the current point and sweeps the grid.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	cfg := e.cfg
	// fill defaults
	if cfg.ReportDir == "" {
		cfg.ReportDir = "./out"
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Verbosity < VerbosityError || cfg.Verbosity > VerbosityTrace {
		cfg.Verbosity = VerbosityInfo
	}
	logger.SetVerbosity(cfg.Verbosity)

	params, err := e.resolveParams()
	if err != nil {
		return nil, err
	}
	logger.Infof("pricing %s: S=%.4f K=%.4f T=%.4f sigma=%.4f r=%.4f",
		cfg.Underlying, params.Spot, params.Strike, params.TimeToMaturity, params.Volatility, params.InterestRate)

	current, err := pricing.Evaluate(params)
	if err != nil {
		return nil, err
	}
	logger.Infof("call=%.4f put=%.4f delta=%.4f gamma=%.6f", current.CallPrice, current.PutPrice, current.CallDelta, current.CallGamma)

	spotAxis, volAxis, err := e.buildAxes(params)
	if err != nil {
		return nil, err
	}
	logger.Debugf("sweep grid %dx%d spot=[%.4f,%.4f] vol=[%.4f,%.4f]",
		len(volAxis), len(spotAxis), spotAxis[0], spotAxis[len(spotAxis)-1], volAxis[0], volAxis[len(volAxis)-1])

	sw, err := sweep.Run(ctx, sweep.Request{
		Base:              params,
		Strike:            cfg.Strike,
		SpotAxis:          spotAxis,
		VolAxis:           volAxis,
		PurchasePriceCall: cfg.PurchasePriceCall,
		PurchasePricePut:  cfg.PurchasePricePut,
	})
	if err != nil {
		return nil, fmt.Errorf("sweep failed: %w", err)
	}

	return &Result{
		RunID:   uuid.NewString(),
		Params:  params,
		Pricing: current,
		Sweep:   sw,
	}, nil
}

// resolveParams builds the MarketParameters for the run, pulling spot and
// realized volatility from the data provider when the config leaves them
// unset.
func (e *Engine) resolveParams() (pricing.MarketParameters, error) {
	cfg := e.cfg
	spot := cfg.Spot
	vol := cfg.Volatility

	if (spot == 0 || vol == 0) && e.prov != nil && cfg.Underlying != "" {
		lookback := cfg.LookbackDays
		if lookback <= 0 {
			lookback = 365
		}
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -lookback)
		bars, err := e.prov.GetDailyBars(cfg.Underlying, from, to)
		if err != nil || len(bars) == 0 {
			return pricing.MarketParameters{}, fmt.Errorf("resolving market data for %s: %w", cfg.Underlying, err)
		}
		if spot == 0 {
			spot, err = data.LatestClose(bars)
			if err != nil {
				return pricing.MarketParameters{}, err
			}
			logger.Infof("resolved spot for %s: %.4f", cfg.Underlying, spot)
		}
		if vol == 0 {
			vol = data.AnnualizedVolatility(data.ExtractCloses(bars))
			logger.Infof("realized vol for %s = %.2f%%", cfg.Underlying, vol*100)
		}
	}

	params := pricing.MarketParameters{
		TimeToMaturity: cfg.TimeToMaturity,
		Strike:         cfg.Strike,
		Spot:           spot,
		Volatility:     vol,
		InterestRate:   cfg.InterestRate,
	}
	if err := params.Validate(); err != nil {
		return pricing.MarketParameters{}, err
	}
	return params, nil
}

// buildAxes derives the sweep axes from the config, defaulting to
// spot x [0.8, 1.2] and volatility x [0.5, 1.5] with 10 points each.
func (e *Engine) buildAxes(params pricing.MarketParameters) (sweep.Axis, sweep.Axis, error) {
	cfg := e.cfg

	spotMin, spotMax := cfg.SpotMin, cfg.SpotMax
	if spotMin == 0 && spotMax == 0 {
		spotMin, spotMax = params.Spot*0.8, params.Spot*1.2
	}
	spotPoints := cfg.SpotPoints
	if spotPoints == 0 {
		spotPoints = sweep.DefaultPoints
	}
	spotAxis, err := sweep.NewAxis(spotMin, spotMax, spotPoints)
	if err != nil {
		return nil, nil, fmt.Errorf("spot axis: %w", err)
	}

	volMin, volMax := cfg.VolMin, cfg.VolMax
	if volMin == 0 && volMax == 0 {
		volMin, volMax = params.Volatility*0.5, params.Volatility*1.5
	}
	volPoints := cfg.VolPoints
	if volPoints == 0 {
		volPoints = sweep.DefaultPoints
	}
	volAxis, err := sweep.NewAxis(volMin, volMax, volPoints)
	if err != nil {
		return nil, nil, fmt.Errorf("vol axis: %w", err)
	}

	return spotAxis, volAxis, nil
}

// Package report writes run results to disk for downstream consumers.
// JSON carries the full result; CSVs hold one matrix each with axis labels,
// which is the shape heatmap tooling expects.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/engine"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/sweep"
)

// WriteJSON writes the complete result, pretty-printed, to
// pricing_<runid>.json in outdir.
func WriteJSON(res *engine.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, fmt.Sprintf("pricing_%s.json", res.RunID)), b, 0644)
}

// WriteCSV writes one CSV per matrix in the sweep result: call_price.csv,
// put_price.csv and, when P&L was requested, call_pnl.csv and put_pnl.csv.
// Rows are labeled with volatility values, columns with spot values.
func WriteCSV(res *engine.Result, outdir string) error {
	sw := res.Sweep
	matrices := map[string]sweep.Matrix{
		"call_price": sw.CallPrice,
		"put_price":  sw.PutPrice,
		"call_pnl":   sw.CallPnL,
		"put_pnl":    sw.PutPnL,
	}
	for name, m := range matrices {
		if m == nil {
			continue
		}
		if err := writeMatrixCSV(filepath.Join(outdir, name+".csv"), m, sw.VolAxis, sw.SpotAxis); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

func writeMatrixCSV(path string, m sweep.Matrix, volAxis, spotAxis sweep.Axis) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, len(spotAxis)+1)
	header = append(header, "volatility")
	for _, s := range spotAxis {
		header = append(header, fmt.Sprintf("%.2f", s))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range m {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, fmt.Sprintf("%.2f", volAxis[i]))
		for _, v := range row {
			rec = append(rec, fmt.Sprintf("%.4f", v))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

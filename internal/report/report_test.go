package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/engine"
)

func runFixture(t *testing.T) *engine.Result {
	t.Helper()
	purchase := 10.0
	cfg := &engine.Config{
		TimeToMaturity:    1.0,
		Strike:            100,
		Spot:              100,
		Volatility:        0.20,
		InterestRate:      0.05,
		SpotMin:           90,
		SpotMax:           110,
		SpotPoints:        3,
		VolMin:            0.10,
		VolMax:            0.30,
		VolPoints:         2,
		PurchasePriceCall: &purchase,
	}
	res, err := engine.NewEngine(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestWriteCSV(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	if err := WriteCSV(res, dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	for _, name := range []string{"call_price.csv", "put_price.csv", "call_pnl.csv"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		recs, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(recs) != 3 { // header + one row per vol
			t.Fatalf("%s rows = %d, want 3", name, len(recs))
		}
		if len(recs[0]) != 4 { // label column + one per spot
			t.Fatalf("%s cols = %d, want 4", name, len(recs[0]))
		}
		if recs[0][0] != "volatility" || recs[0][1] != "90.00" || recs[0][3] != "110.00" {
			t.Errorf("%s header = %v", name, recs[0])
		}
		if recs[1][0] != "0.10" || recs[2][0] != "0.30" {
			t.Errorf("%s row labels = %q, %q", name, recs[1][0], recs[2][0])
		}
	}

	// No put purchase price, so no put P&L file.
	if _, err := os.Stat(filepath.Join(dir, "put_pnl.csv")); !os.IsNotExist(err) {
		t.Errorf("unexpected put_pnl.csv (err=%v)", err)
	}
}

func TestWriteJSON(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	if err := WriteJSON(res, dir); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "pricing_"+res.RunID+".json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back engine.Result
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RunID != res.RunID {
		t.Errorf("run id = %q, want %q", back.RunID, res.RunID)
	}
	if back.Pricing.CallPrice != res.Pricing.CallPrice {
		t.Errorf("call price round-trip mismatch: %v != %v", back.Pricing.CallPrice, res.Pricing.CallPrice)
	}
}

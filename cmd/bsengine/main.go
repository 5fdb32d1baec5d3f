package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/data"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/engine"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/report"
	"github.com/prathikanand7/Black-Scholes-Option-Pricing-Model/internal/server"
)

func main() {
	configPath := flag.String("config", "pricing.json", "path to JSON config")
	rest := flag.Bool("rest", false, "run as REST server (accept pricing/sweep jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	// choose provider
	var prov data.Provider
	apiKey := os.Getenv("POLYGON_API_KEY")
	if apiKey != "" {
		prov = data.NewPolygonProvider(apiKey)
		log.Printf("[info] polygon provider enabled")
	} else {
		prov = data.NewSyntheticProvider(time.Now().UnixNano())
		log.Printf("[info] synthetic provider enabled")
	}

	if *rest {
		srv := server.New(prov)
		log.Printf("[info] starting REST server on %s", *port)
		log.Fatal(http.ListenAndServe(*port, srv.Router()))
		return
	}

	cfgData, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	var cfg engine.Config
	if err := json.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	start := time.Now()
	res, err := engine.NewEngine(&cfg, prov).Run(context.Background())
	if err != nil {
		log.Fatalf("pricing run failed: %v", err)
	}

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Printf("[warn] could not create output dir %s: %v", cfg.ReportDir, err)
	}
	_ = report.WriteJSON(res, cfg.ReportDir)
	_ = report.WriteCSV(res, cfg.ReportDir)
	log.Printf("[done] run %s finished in %v, call=%.4f put=%.4f, wrote %dx%d grid to %s",
		res.RunID, time.Since(start), res.Pricing.CallPrice, res.Pricing.PutPrice,
		len(res.Sweep.VolAxis), len(res.Sweep.SpotAxis), cfg.ReportDir)
}

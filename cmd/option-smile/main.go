package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/contactkeval/option-smile/internal/logger"
	"github.com/contactkeval/option-smile/internal/pricing"
	"github.com/contactkeval/option-smile/internal/report"
	"github.com/contactkeval/option-smile/internal/smile"
)

func main() {
	configPath := flag.String("config", "", "path to JSON parameter file (flags override its values)")
	mode := flag.String("mode", "price", "price | mc | implied | smile")
	spot := flag.Float64("spot", 100, "spot price of the underlying")
	strike := flag.Float64("strike", 105, "strike price")
	maturity := flag.Float64("maturity", 1, "time to expiry in years")
	rate := flag.Float64("rate", 0.04, "risk-free rate")
	vol := flag.Float64("vol", 0.2, "volatility (price/mc modes)")
	optType := flag.String("type", "call", "option type: call or put")
	paths := flag.Int("paths", 100000, "Monte Carlo scenario count")
	marketPrice := flag.Float64("market-price", 0, "observed price to invert (implied mode)")
	baseVol := flag.Float64("base-vol", 0.2, "base volatility for smile calibration")
	strikes := flag.Int("strikes", 50, "strike grid size for smile calibration")
	seed := flag.Uint64("seed", 0, "random seed (0 = derive from clock)")
	outDir := flag.String("out", "out", "output directory for smile reports")
	verbosity := flag.Int("v", 1, "verbosity: 0=errors,1=info,2=debug,3=trace")
	rest := flag.Bool("rest", false, "run as REST server instead of one-shot CLI")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Explicitly set flags win over the parameter file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "spot":
			cfg.Spot = *spot
		case "strike":
			cfg.Strike = *strike
		case "maturity":
			cfg.Maturity = *maturity
		case "rate":
			cfg.Rate = *rate
		case "vol":
			cfg.Vol = *vol
		case "type":
			cfg.Type = *optType
		case "paths":
			cfg.Paths = *paths
		case "market-price":
			cfg.MarketPrice = *marketPrice
		case "base-vol":
			cfg.BaseVol = *baseVol
		case "strikes":
			cfg.Strikes = *strikes
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.OutputDir = *outDir
		case "v":
			cfg.Verbosity = *verbosity
		}
	})
	cfg.ensureSeed()

	logger.SetVerbosity(cfg.Verbosity)

	if *rest {
		serve(*port)
		return
	}

	typ := pricing.OptionType(cfg.Type)

	switch cfg.Mode {
	case "price":
		p, err := pricing.Price(cfg.Spot, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.Vol, typ)
		if err != nil {
			log.Fatalf("price: %v", err)
		}
		fmt.Printf("The price of the %s option is: %f\n", typ, p)

	case "mc":
		p, err := pricing.MonteCarloPrice(cfg.Spot, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.Vol, cfg.Paths, typ, pricing.NewSampler(cfg.Seed))
		if err != nil {
			log.Fatalf("mc: %v", err)
		}
		fmt.Printf("Monte Carlo %s price (%d paths): %f\n", typ, cfg.Paths, p)

	case "implied":
		iv, err := pricing.ImpliedVolWithConfig(cfg.Spot, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.MarketPrice, typ, cfg.Solver)
		if err != nil {
			log.Fatalf("implied: %v", err)
		}
		fmt.Printf("Implied volatility: %f\n", iv)

	case "smile":
		start := time.Now()
		curve, err := smile.Calibrate(cfg.Spot, cfg.Maturity, cfg.Rate, cfg.BaseVol, smile.Config{
			Strikes: cfg.Strikes,
			Seed:    cfg.Seed,
			Solver:  cfg.Solver,
		})
		if err != nil {
			log.Fatalf("smile: %v", err)
		}
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			log.Fatalf("could not create output dir %s: %v", cfg.OutputDir, err)
		}
		if err := report.WriteJSON(curve, cfg.OutputDir); err != nil {
			log.Fatalf("writing smile.json: %v", err)
		}
		if err := report.WriteCSV(curve, cfg.OutputDir); err != nil {
			log.Fatalf("writing smile.csv: %v", err)
		}
		logger.Infof("calibrated %d strikes (%d failed) in %v, wrote reports to %s",
			len(curve), curve.Failed(), time.Since(start), cfg.OutputDir)

	default:
		log.Fatalf("unknown mode %q", cfg.Mode)
	}
}

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/contactkeval/option-smile/internal/logger"
	"github.com/contactkeval/option-smile/internal/pricing"
	"github.com/contactkeval/option-smile/internal/smile"
)

// priceRequest is the JSON body accepted by /price.
type priceRequest struct {
	Spot     float64 `json:"spot"`
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`
	Vol      float64 `json:"vol"`
	Type     string  `json:"type"`
	Paths    int     `json:"paths,omitempty"` // > 0 selects Monte Carlo
	Seed     uint64  `json:"seed,omitempty"`  // 0 derives a seed from the clock
}

// smileRequest is the JSON body accepted by /smile.
type smileRequest struct {
	Spot     float64      `json:"spot"`
	Maturity float64      `json:"maturity"`
	Rate     float64      `json:"rate"`
	BaseVol  float64      `json:"base_vol"`
	Config   smile.Config `json:"config"`
}

// smilePoint is one entry of the /smile response; failed strikes keep
// their slot with a null vol and the failure reason, matching the
// on-disk report shape.
type smilePoint struct {
	Strike float64  `json:"strike"`
	Vol    *float64 `json:"vol"`
	Error  string   `json:"error,omitempty"`
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/price", func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		typ := pricing.OptionType(req.Type)
		var (
			p   float64
			err error
		)
		if req.Paths > 0 {
			if req.Seed == 0 {
				req.Seed = uint64(time.Now().UnixNano())
			}
			p, err = pricing.MonteCarloPrice(req.Spot, req.Strike, req.Maturity, req.Rate, req.Vol, req.Paths, typ, pricing.NewSampler(req.Seed))
		} else {
			p, err = pricing.Price(req.Spot, req.Strike, req.Maturity, req.Rate, req.Vol, typ)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]float64{"price": p})
	})

	mux.HandleFunc("/smile", func(w http.ResponseWriter, r *http.Request) {
		var req smileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		logger.Infof("received /smile request: S=%.2f T=%.2f", req.Spot, req.Maturity)
		curve, err := smile.Calibrate(req.Spot, req.Maturity, req.Rate, req.BaseVol, req.Config)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out := make([]smilePoint, 0, len(curve))
		for _, p := range curve {
			sp := smilePoint{Strike: p.Strike}
			if p.OK() {
				v := p.Vol
				sp.Vol = &v
			} else {
				sp.Error = p.Err.Error()
			}
			out = append(out, sp)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

func serve(addr string) {
	logger.Infof("starting REST server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, newMux()))
}

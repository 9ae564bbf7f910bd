// Package report serializes a calibrated volatility smile to disk, as
// JSON for downstream tooling and as CSV for spreadsheets and plotting.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-smile/internal/smile"
)

// pointJSON is the wire shape of one smile entry. Vol is a pointer so a
// failed strike serializes as null instead of a bogus number.
type pointJSON struct {
	Strike float64  `json:"strike"`
	Vol    *float64 `json:"vol"`
	Error  string   `json:"error,omitempty"`
}

func toJSON(curve smile.Curve) []pointJSON {
	out := make([]pointJSON, 0, len(curve))
	for _, p := range curve {
		pj := pointJSON{Strike: p.Strike}
		if p.OK() {
			vol := p.Vol
			pj.Vol = &vol
		} else {
			pj.Error = p.Err.Error()
		}
		out = append(out, pj)
	}
	return out
}

// WriteJSON writes the curve to smile.json in outdir.
func WriteJSON(curve smile.Curve, outdir string) error {
	b, err := json.MarshalIndent(toJSON(curve), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "smile.json"), b, 0644)
}

// WriteCSV writes the curve to smile.csv in outdir, one row per strike.
// Failed strikes keep their row with an empty vol cell.
func WriteCSV(curve smile.Curve, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "smile.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"strike", "implied_vol", "error"}); err != nil {
		return err
	}
	for _, p := range curve {
		row := []string{fmt.Sprintf("%.4f", p.Strike), "", ""}
		if p.OK() {
			row[1] = fmt.Sprintf("%.6f", p.Vol)
		} else {
			row[2] = p.Err.Error()
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

package report

import (
	"bytes"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/contactkeval/option-smile/internal/pricing"
	"github.com/contactkeval/option-smile/internal/smile"
)

var update = flag.Bool("update", false, "update golden files")

func sampleCurve() smile.Curve {
	return smile.Curve{
		{Strike: 80, Vol: 0.25},
		{Strike: 100, Vol: 0.2},
		{Strike: 120, Err: pricing.ErrNoConvergence},
	}
}

//
// --- Golden file helpers ---
//

func compareWithGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")

	if *update {
		if err := os.WriteFile(path, actual, 0644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}

	if !bytes.Equal(bytes.TrimSpace(expected), bytes.TrimSpace(actual)) {
		t.Fatalf("golden mismatch for %s\nexpected:\n%s\nactual:\n%s",
			name, string(expected), string(actual))
	}
}

func TestWriteJSONGolden(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSON(sampleCurve(), dir); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "smile.json"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	compareWithGolden(t, "smile_json", b)
}

func TestWriteCSVKeepsFailedRows(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCSV(sampleCurve(), dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "smile.csv"))
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "strike" || rows[0][1] != "implied_vol" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[2][1] != "0.200000" {
		t.Fatalf("expected formatted vol in row 2, got %q", rows[2][1])
	}
	if rows[3][1] != "" || rows[3][2] == "" {
		t.Fatalf("failed strike should have empty vol and an error, got %v", rows[3])
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	return resp
}

func TestPriceEndpointClosedForm(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/price",
		`{"spot":100,"strike":105,"maturity":1,"rate":0.04,"vol":0.2,"type":"call"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.InDelta(t, 7.567, out["price"], 0.02)
}

func TestPriceEndpointRejectsBadType(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/price",
		`{"spot":100,"strike":105,"maturity":1,"rate":0.04,"vol":0.2,"type":"straddle"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Omitting the seed must give every request its own entropy; two
// seedless Monte Carlo calls should not return the same estimate.
func TestPriceEndpointMonteCarloSeedsPerRequest(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	body := `{"spot":100,"strike":105,"maturity":1,"rate":0.04,"vol":0.2,"type":"call","paths":2000}`

	estimate := func() float64 {
		resp := postJSON(t, srv.URL+"/price", body)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out["price"]
	}

	if a, b := estimate(), estimate(); a == b {
		t.Fatalf("seedless requests returned identical estimates: %f", a)
	}
}

// An explicit seed keeps Monte Carlo responses reproducible.
func TestPriceEndpointMonteCarloExplicitSeed(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	body := `{"spot":100,"strike":105,"maturity":1,"rate":0.04,"vol":0.2,"type":"call","paths":2000,"seed":7}`

	estimate := func() float64 {
		resp := postJSON(t, srv.URL+"/price", body)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out["price"]
	}

	if a, b := estimate(), estimate(); a != b {
		t.Fatalf("seeded requests diverged: %f vs %f", a, b)
	}
}

// Failed strikes come back with a null vol and the failure reason, the
// same shape the on-disk report uses. A one-iteration budget at an
// impossible tolerance fails every strike.
func TestSmileEndpointCarriesFailureReasons(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/smile",
		`{"spot":100,"maturity":1,"rate":0.05,"base_vol":0.2,
		  "config":{"strikes":5,"seed":3,"solver":{"tolerance":1e-12,"max_iterations":1}}}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []smilePoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 5)

	for _, p := range out {
		if p.Vol != nil {
			t.Fatalf("expected null vol at K=%f, got %f", p.Strike, *p.Vol)
		}
		if p.Error == "" {
			t.Fatalf("expected a failure reason at K=%f", p.Strike)
		}
	}
}

func TestSmileEndpointHappyPath(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/smile",
		`{"spot":100,"maturity":1,"rate":0.05,"base_vol":0.2,"config":{"strikes":10,"seed":5}}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []smilePoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 10)

	for _, p := range out {
		if p.Error == "" && p.Vol == nil {
			t.Fatalf("point at K=%f has neither vol nor error", p.Strike)
		}
	}
}

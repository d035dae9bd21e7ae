package daemon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photolab/photolab/pkg/experiment"
	"github.com/photolab/photolab/pkg/physics"
	"github.com/photolab/photolab/pkg/sweep"
	"github.com/photolab/photolab/pkg/types"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return setupRoutes(&server{
		exp:     experiment.New("pef-lab", physics.Default()),
		dataDir: t.TempDir(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func addReq(kind string, wavelengthNM, vs float64) types.AddEntryRequest {
	return types.AddEntryRequest{
		Kind:         kind,
		WavelengthNM: wavelengthNM,
		Samples: []sweep.Sample{
			{RetardingVoltage: vs - 0.2, UnblockedCurrent: -1, BlockedCurrent: 0},
			{RetardingVoltage: vs, UnblockedCurrent: 1, BlockedCurrent: 0},
		},
	}
}

func TestAddListRemoveEntries(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 450, 1.2))
	if w.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created types.EntrySummary
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode add response: %v", err)
	}
	if created.Index != 0 || created.StoppingVoltageV != 1.2 {
		t.Fatalf("unexpected created entry: %+v", created)
	}

	doJSON(t, h, http.MethodPost, "/entries", addReq("Laser", 650, 0.4))

	w = doJSON(t, h, http.MethodGet, "/entries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var entries []types.EntrySummary
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	w = doJSON(t, h, http.MethodDelete, "/entries/0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/entries", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(entries) != 1 || entries[0].WavelengthNM != 650 {
		t.Fatalf("expected the 650nm entry to remain, got %+v", entries)
	}
}

func TestRemoveOutOfRangeIsBadRequest(t *testing.T) {
	h := newTestServer(t)
	if w := doJSON(t, h, http.MethodDelete, "/entries/5", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := doJSON(t, h, http.MethodDelete, "/entries/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer index, got %d", w.Code)
	}
}

func TestAddEntryValidation(t *testing.T) {
	h := newTestServer(t)
	if w := doJSON(t, h, http.MethodPost, "/entries", addReq("Lamp", 450, 1.2)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", w.Code)
	}
	if w := doJSON(t, h, http.MethodPost, "/entries", addReq("LED", -450, 1.2)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative wavelength, got %d", w.Code)
	}
}

func TestUpdateMovesReplacementToEnd(t *testing.T) {
	h := newTestServer(t)
	doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 400, 1.5))
	doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 500, 0.8))
	doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 600, 0.6))

	w := doJSON(t, h, http.MethodPut, "/entries/1", addReq("Laser", 505, 0.9))
	if w.Code != http.StatusCreated {
		t.Fatalf("update: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var updated types.EntrySummary
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updated.Index != 2 {
		t.Fatalf("expected replacement at index 2, got %d", updated.Index)
	}

	w = doJSON(t, h, http.MethodGet, "/entries", nil)
	var entries []types.EntrySummary
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	want := []float64{400, 600, 505}
	for i, wl := range want {
		if entries[i].WavelengthNM != wl {
			t.Fatalf("entry %d: expected %gnm, got %gnm", i, wl, entries[i].WavelengthNM)
		}
	}
}

func TestResultsAndReport(t *testing.T) {
	h := newTestServer(t)
	doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 450, 1.2))

	// A single source cannot produce a fit.
	if w := doJSON(t, h, http.MethodGet, "/results", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with one entry, got %d", w.Code)
	}

	doJSON(t, h, http.MethodPost, "/entries", addReq("Laser", 650, 0.4))

	w := doJSON(t, h, http.MethodGet, "/results", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res types.ResultsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode results response: %v", err)
	}
	if len(res.Rows) != 2 || res.Fit.PlanckEstimate == 0 {
		t.Fatalf("unexpected results response: %+v", res)
	}

	w = doJSON(t, h, http.MethodGet, "/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Percent error:")) {
		t.Fatalf("report missing percent error line:\n%s", w.Body.String())
	}
}

func TestSaveAndClear(t *testing.T) {
	h := newTestServer(t)
	doJSON(t, h, http.MethodPost, "/entries", addReq("LED", 450, 1.2))
	doJSON(t, h, http.MethodPost, "/entries", addReq("Laser", 650, 0.4))

	if w := doJSON(t, h, http.MethodPost, "/save", nil); w.Code != http.StatusCreated {
		t.Fatalf("save: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, h, http.MethodDelete, "/entries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	var n int
	if err := json.Unmarshal(w.Body.Bytes(), &n); err != nil {
		t.Fatalf("failed to decode clear response: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected clear to report 2 entries, got %d", n)
	}
}

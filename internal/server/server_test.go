package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/stanrw/enerwiseuk-sub000/internal/cache"
	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/internal/logging"
	"github.com/stanrw/enerwiseuk-sub000/internal/solarapi"
	"github.com/stanrw/enerwiseuk-sub000/internal/store"
	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

type published struct {
	id, address string
	panels      int
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []published
}

func (f *fakePublisher) PublishCompleted(id, address string, inst *installation.Installation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{id, address, inst.Summary.TotalPanels})
	return f.err
}

type fakeSource struct {
	bi  *insights.BuildingInsights
	err error
	got geo.LatLng
}

func (f *fakeSource) FindClosest(_ context.Context, loc geo.LatLng) (*insights.BuildingInsights, error) {
	f.got = loc
	return f.bi, f.err
}

type testServer struct {
	*Server
	store     *store.Store
	publisher *fakePublisher
	source    *fakeSource
	redis     *miniredis.Miniredis
}

func exampleInsights(t *testing.T) (*insights.BuildingInsights, []byte) {
	t.Helper()
	data, err := os.ReadFile("../../examples/south-roof/insights.json")
	if err != nil {
		t.Fatalf("reading example insights: %v", err)
	}
	bi, err := insights.Parse(data)
	if err != nil {
		t.Fatalf("insights.Parse failed: %v", err)
	}
	return bi, data
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	p, err := project.LoadProject("../../examples/south-roof")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	cfg := config.Default()
	cfg.Engine.Constraints = p.Constraints
	cfg.Engine.Panel = p.Panel
	cfg.Cost = p.Tariff
	cfg.Server.RatePerSecond = 1000
	cfg.Server.RateBurst = 1000
	if mutate != nil {
		mutate(cfg)
	}

	st, err := store.Open(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "solar.db"),
		WALMode:     true,
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	mr := miniredis.RunT(t)
	c := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0, "test:")
	t.Cleanup(func() { c.Close() })

	bi, _ := exampleInsights(t)
	ts := &testServer{
		store:     st,
		publisher: &fakePublisher{},
		source:    &fakeSource{bi: bi},
		redis:     mr,
	}
	ts.Server = New(cfg, Deps{
		Store:     st,
		Cache:     c,
		Publisher: ts.publisher,
		Source:    ts.source,
	}, logging.Discard())
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case []byte:
		buf.Write(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

type solveResult struct {
	ID           string `json:"id"`
	Cached       bool   `json:"cached"`
	Installation struct {
		Summary struct {
			TotalPanels      int     `json:"totalPanels"`
			SystemCapacityKw float64 `json:"systemCapacityKw"`
		} `json:"summary"`
		ElectricalDesign struct {
			TotalStrings int `json:"totalStrings"`
		} `json:"electricalDesign"`
	} `json:"installation"`
	Cost struct {
		Summary struct {
			InstallCost float64 `json:"install_cost"`
		} `json:"summary"`
	} `json:"cost"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return v
}

func solveBody(t *testing.T, extra map[string]any) map[string]any {
	t.Helper()
	_, raw := exampleInsights(t)
	body := map[string]any{
		"address":          "1 Example Row",
		"buildingInsights": json.RawMessage(raw),
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decode[map[string]string](t, w)["status"]; got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}

func TestSolve(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	res := decode[solveResult](t, w)
	if res.ID == "" || res.Cached {
		t.Errorf("id = %q, cached = %v; want fresh stored result", res.ID, res.Cached)
	}
	if res.Installation.Summary.TotalPanels != 12 {
		t.Errorf("total panels = %d, want 12", res.Installation.Summary.TotalPanels)
	}
	if res.Installation.ElectricalDesign.TotalStrings != 2 {
		t.Errorf("total strings = %d, want 2", res.Installation.ElectricalDesign.TotalStrings)
	}
	if res.Cost.Summary.InstallCost <= 0 {
		t.Errorf("install cost = %v, want positive", res.Cost.Summary.InstallCost)
	}

	rec, err := ts.store.Get(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if rec.Address != "1 Example Row" {
		t.Errorf("stored address = %q", rec.Address)
	}

	if len(ts.publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(ts.publisher.events))
	}
	if ev := ts.publisher.events[0]; ev.id != res.ID || ev.panels != 12 {
		t.Errorf("event = %+v", ev)
	}
}

func TestSolveServedFromCache(t *testing.T) {
	ts := newTestServer(t, nil)

	first := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil)))
	w := ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	second := decode[solveResult](t, w)
	if !second.Cached || second.ID != first.ID {
		t.Errorf("second solve = (%q, cached %v), want (%q, cached true)", second.ID, second.Cached, first.ID)
	}
	if len(ts.publisher.events) != 1 {
		t.Errorf("published %d events, want 1", len(ts.publisher.events))
	}

	// A different tariff reuses the installation but re-estimates the cost.
	repriced := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, map[string]any{
		"tariff": map[string]any{"installCostPerKwp": 3000},
	})))
	if !repriced.Cached || repriced.ID != first.ID {
		t.Errorf("tariff change should still hit the cache")
	}
	if repriced.Cost.Summary.InstallCost <= first.Cost.Summary.InstallCost {
		t.Errorf("install cost %v at 3000/kWp, want more than %v", repriced.Cost.Summary.InstallCost, first.Cost.Summary.InstallCost)
	}

	// Different constraints miss the cache.
	w = ts.do(t, http.MethodPost, "/api/solve", solveBody(t, map[string]any{
		"constraints": map[string]any{"preferredStringSize": 6},
	}))
	third := decode[solveResult](t, w)
	if third.Cached || third.ID == first.ID {
		t.Errorf("solve with new constraints was served from cache")
	}
	if third.Installation.ElectricalDesign.TotalStrings != 2 {
		t.Errorf("total strings = %d, want 2", third.Installation.ElectricalDesign.TotalStrings)
	}
}

func TestSolveWithoutOptionalDeps(t *testing.T) {
	ts := newTestServer(t, nil)
	bare := New(ts.cfg, Deps{Store: ts.store}, logging.Discard())

	body, _ := json.Marshal(solveBody(t, nil))
	req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewReader(body))
	w := httptest.NewRecorder()
	bare.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/solve/location", bytes.NewReader([]byte(`{"latitude":51.5,"longitude":-0.1}`)))
	w = httptest.NewRecorder()
	bare.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("location without source: status = %d, want 503", w.Code)
	}
}

func TestSolvePublishFailureStillStores(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.publisher.err = errors.New("broker down")

	w := ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", []byte(`{"buildingInsights":`)},
		{"missing insights", map[string]any{"address": "x"}},
		{"out of range pitch", map[string]any{"buildingInsights": map[string]any{"solarPotential": map[string]any{
			"roofSegmentStats": []any{map[string]any{"pitchDegrees": 95, "azimuthDegrees": 180}},
		}}}},
		{"invalid constraints", solveBody(t, map[string]any{"constraints": map[string]any{"roofEdgeSetback": -1}})},
		{"invalid panel", solveBody(t, map[string]any{"panel": map[string]any{"watts": 0}})},
		{"undecodable tariff", solveBody(t, map[string]any{"tariff": "cheap"})},
	}

	ts := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/solve", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
	if len(ts.publisher.events) != 0 {
		t.Errorf("published %d events for rejected input", len(ts.publisher.events))
	}
}

func TestSolveLocation(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/solve/location", map[string]any{
		"latitude":  51.5014,
		"longitude": -0.1419,
		"address":   "1 Example Row",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if got := decode[solveResult](t, w).Installation.Summary.TotalPanels; got != 12 {
		t.Errorf("total panels = %d, want 12", got)
	}
	if ts.source.got.Latitude != 51.5014 || ts.source.got.Longitude != -0.1419 {
		t.Errorf("source queried at %+v", ts.source.got)
	}
}

func TestSolveLocationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid location", insights.ErrInvalidLocation, http.StatusBadRequest},
		{"not found", solarapi.ErrNotFound, http.StatusNotFound},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"upstream", solarapi.ErrUpstream, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.source.err = tt.err
			w := ts.do(t, http.MethodPost, "/api/solve/location", map[string]any{"latitude": 1.0, "longitude": 2.0})
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSolveEmptyRoof(t *testing.T) {
	tests := []struct {
		name string
		bi   map[string]any
	}{
		{"no segments", map[string]any{"solarPotential": map[string]any{"roofSegmentStats": []any{}, "solarPanels": []any{}}}},
		{"no solar potential", map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			w := ts.do(t, http.MethodPost, "/api/solve", map[string]any{"buildingInsights": tt.bi})
			if w.Code != http.StatusCreated {
				t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
			}
			assertEmptyInstallation(t, w)
			if len(ts.publisher.events) != 1 {
				t.Errorf("published %d events, want 1", len(ts.publisher.events))
			}
		})
	}
}

func TestSolveLocationWithoutSolarPotential(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.source.bi = &insights.BuildingInsights{Name: "buildings/shed"}
	ts.source.err = insights.ErrNoSolarPotential

	w := ts.do(t, http.MethodPost, "/api/solve/location", map[string]any{"latitude": 51.5, "longitude": -0.1})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	assertEmptyInstallation(t, w)
}

func assertEmptyInstallation(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	got := decode[struct {
		Installation struct {
			Panels  []any `json:"panels"`
			Summary struct {
				TotalPanels int `json:"totalPanels"`
			} `json:"summary"`
			ElectricalDesign struct {
				TotalStrings int `json:"totalStrings"`
			} `json:"electricalDesign"`
			InstallationQuality map[string]float64 `json:"installationQuality"`
			Validation          struct {
				Valid    bool `json:"valid"`
				Warnings []struct {
					Message string `json:"message"`
				} `json:"warnings"`
			} `json:"validation"`
		} `json:"installation"`
	}](t, w).Installation

	if got.Summary.TotalPanels != 0 || len(got.Panels) != 0 {
		t.Errorf("panels = %d, want 0", got.Summary.TotalPanels)
	}
	if got.ElectricalDesign.TotalStrings != 0 {
		t.Errorf("strings = %d, want 0", got.ElectricalDesign.TotalStrings)
	}
	for name, v := range got.InstallationQuality {
		if v != 1 {
			t.Errorf("%s = %v, want 1", name, v)
		}
	}
	if !got.Validation.Valid {
		t.Error("empty roof should solve to a valid installation")
	}
	insufficient := false
	for _, warn := range got.Validation.Warnings {
		if strings.HasPrefix(warn.Message, "insufficient data") {
			insufficient = true
		}
	}
	if !insufficient {
		t.Errorf("expected an insufficient data warning, got %+v", got.Validation.Warnings)
	}
}

func TestSolveLocationRequiresCoordinates(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodPost, "/api/solve/location", map[string]any{"latitude": 51.5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/validate", solveBody(t, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if r := decode[map[string]any](t, w); r["valid"] != true {
		t.Errorf("example input should validate: %s", w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/validate", map[string]any{
		"constraints": map[string]any{"maxPanelsPerString": 0},
	})
	if r := decode[map[string]any](t, w); r["valid"] != false {
		t.Errorf("zero string size should be invalid: %s", w.Body.String())
	}
}

func TestGetInstallation(t *testing.T) {
	ts := newTestServer(t, nil)
	id := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))).ID

	w := ts.do(t, http.MethodGet, "/api/installations/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decode[solveResult](t, w); got.ID != id || got.Installation.Summary.TotalPanels != 12 {
		t.Errorf("got id %q with %d panels", got.ID, got.Installation.Summary.TotalPanels)
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown id", "/api/installations/6f1c1d5e-4b7a-4a55-9a39-2a4b6f0d9c11", http.StatusNotFound},
		{"malformed id", "/api/installations/not-a-uuid", http.StatusBadRequest},
		{"unknown scene", "/api/installations/6f1c1d5e-4b7a-4a55-9a39-2a4b6f0d9c11/scene", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := ts.do(t, http.MethodGet, tt.path, nil); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestInstallationScene(t *testing.T) {
	ts := newTestServer(t, nil)
	id := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))).ID

	w := ts.do(t, http.MethodGet, "/api/installations/"+id+"/scene", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	got := decode[struct {
		Scene struct {
			Entities []struct {
				Type string `json:"type"`
			} `json:"entities"`
		} `json:"scene"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
	}](t, w)

	panels := 0
	for _, e := range got.Scene.Entities {
		if e.Type == "panel" {
			panels++
		}
	}
	if panels != 12 {
		t.Errorf("scene has %d panels, want 12", panels)
	}
	if !got.Validation.Valid {
		t.Errorf("scene should validate: %s", w.Body.String())
	}
}

func TestInstallationPlan(t *testing.T) {
	ts := newTestServer(t, nil)
	id := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))).ID

	w := ts.do(t, http.MethodGet, "/api/installations/"+id+"/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	got := decode[struct {
		Metadata struct {
			PanelCount  int `json:"panel_count"`
			StringCount int `json:"string_count"`
		} `json:"metadata"`
	}](t, w)
	if got.Metadata.PanelCount != 12 || got.Metadata.StringCount != 2 {
		t.Errorf("plan metadata = %+v, want 12 panels in 2 strings", got.Metadata)
	}
}

func TestDerivedViewsAreStable(t *testing.T) {
	ts := newTestServer(t, nil)
	id := decode[solveResult](t, ts.do(t, http.MethodPost, "/api/solve", solveBody(t, nil))).ID
	rec, err := ts.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("store.Get failed: %v", err)
	}
	want := rec.CreatedAt.UTC().Format(time.RFC3339)

	for _, tt := range []struct {
		path string
		at   func([]byte) string
	}{
		{"/scene", func(b []byte) string {
			var v struct {
				Scene struct {
					Metadata struct {
						GeneratedAt string `json:"generated_at"`
					} `json:"metadata"`
				} `json:"scene"`
			}
			json.Unmarshal(b, &v) //nolint:errcheck
			return v.Scene.Metadata.GeneratedAt
		}},
		{"/plan", func(b []byte) string {
			var v struct {
				Metadata struct {
					GeneratedAt string `json:"generated_at"`
				} `json:"metadata"`
			}
			json.Unmarshal(b, &v) //nolint:errcheck
			return v.Metadata.GeneratedAt
		}},
	} {
		t.Run(tt.path, func(t *testing.T) {
			first := ts.do(t, http.MethodGet, "/api/installations/"+id+tt.path, nil).Body.String()
			second := ts.do(t, http.MethodGet, "/api/installations/"+id+tt.path, nil).Body.String()
			if first != second {
				t.Error("repeated requests returned different bodies")
			}
			if got := tt.at([]byte(first)); got != want {
				t.Errorf("generated_at = %q, want record time %q", got, want)
			}
		})
	}
}

func TestListInstallations(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, extra := range []map[string]any{nil, {"panel": map[string]any{"watts": 350}}} {
		ts.do(t, http.MethodPost, "/api/solve", solveBody(t, extra))
	}

	w := ts.do(t, http.MethodGet, "/api/installations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	list := decode[struct {
		Installations []store.Summary `json:"installations"`
	}](t, w).Installations
	if len(list) != 2 {
		t.Fatalf("listed %d installations, want 2", len(list))
	}

	w = ts.do(t, http.MethodGet, "/api/installations?limit=1", nil)
	if n := len(decode[struct {
		Installations []store.Summary `json:"installations"`
	}](t, w).Installations); n != 1 {
		t.Errorf("limit=1 listed %d", n)
	}

	if w := ts.do(t, http.MethodGet, "/api/installations?limit=zero", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RatePerSecond = 0.001
		cfg.Server.RateBurst = 1
	})

	if w := ts.do(t, http.MethodPost, "/api/validate", map[string]any{}); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}
	if w := ts.do(t, http.MethodPost, "/api/validate", map[string]any{}); w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", w.Code)
	}
	// Reads are not limited.
	if w := ts.do(t, http.MethodGet, "/api/health", nil); w.Code != http.StatusOK {
		t.Errorf("health: status = %d, want 200", w.Code)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.AllowedOrigins = []string{"https://planner.example"}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://planner.example")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://planner.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("disallowed origin: status = %d, want 403", w.Code)
	}
}

func TestCORSAllowAllWhenUnset(t *testing.T) {
	if c := corsConfig(nil); !c.AllowAllOrigins || len(c.AllowOrigins) != 0 {
		t.Errorf("corsConfig(nil) = %+v, want allow all", c)
	}
	if c := corsConfig([]string{"https://a.example"}); c.AllowAllOrigins {
		t.Error("listed origins should not allow all")
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trailblazer/pkg/geo"
	netio "github.com/matzehuels/trailblazer/pkg/io"
	"github.com/matzehuels/trailblazer/pkg/metrics"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

func testGraph(t *testing.T) *geo.Graph {
	t.Helper()
	g := geo.New()
	g.AddIntersection("A", 43.1300, -77.6300)
	g.AddIntersection("B", 43.1310, -77.6250)
	g.AddIntersection("C", 43.1280, -77.6270)
	g.AddIntersection("Z", 44.0000, -78.0000)
	for _, r := range [][3]string{{"AB", "A", "B"}, {"BC", "B", "C"}} {
		if _, err := g.AddRoad(r[0], r[1], r[2]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func newTestServer(t *testing.T, opts Options) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if opts.Graph == nil {
		opts.Graph = testGraph(t)
	}
	opts.Logger = log.New(&logs)
	return New(opts), &logs
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	s, logs := newTestServer(t, Options{})
	rec := get(t, s.Router(), "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ok"] != true || body["intersections"] != float64(4) || body["roads"] != float64(2) {
		t.Errorf("body = %v", body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if !strings.Contains(logs.String(), "http_request") {
		t.Errorf("access log missing: %q", logs.String())
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestNetwork(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := get(t, s.Router(), "/network")

	g, err := netio.ReadJSON(rec.Body)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if g.IntersectionCount() != 4 || g.RoadCount() != 2 {
		t.Errorf("network = %d intersections, %d roads", g.IntersectionCount(), g.RoadCount())
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		status    int
		found     bool
		stops     string
		errorCode string
	}{
		{"by id", "from=A&to=C", http.StatusOK, true, "A,B,C", ""},
		{"by coordinates", "from_lat=43.13&from_lon=-77.63&to=C", http.StatusOK, true, "A,B,C", ""},
		{"same endpoint", "from=B&to=B", http.StatusOK, true, "B", ""},
		{"unreachable", "from=A&to=Z", http.StatusOK, false, "A", ""},
		{"unknown", "from=A&to=nowhere", http.StatusNotFound, false, "", "NOT_FOUND"},
		{"missing", "from=A", http.StatusBadRequest, false, "", "INVALID_ARGUMENTS"},
		{"bad coordinates", "from=A&to_lat=x&to_lon=1", http.StatusBadRequest, false, "", "INVALID_ARGUMENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, Options{})
			rec := get(t, s.Router(), "/route?"+tt.query)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}

			if tt.errorCode != "" {
				var body struct {
					Error struct{ Code string } `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatal(err)
				}
				if body.Error.Code != tt.errorCode {
					t.Errorf("error code = %q, want %q", body.Error.Code, tt.errorCode)
				}
				return
			}

			var resp routeResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Found != tt.found || strings.Join(resp.Stops, ",") != tt.stops {
				t.Errorf("found=%v stops=%v, want %v %s", resp.Found, resp.Stops, tt.found, tt.stops)
			}
			if len(resp.ID) != 36 {
				t.Errorf("route id = %q, want a uuid", resp.ID)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rec := get(t, s.Router(), "/render.svg?from=A&to=C&debug=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	svg := rec.Body.String()
	if n := strings.Count(svg, `stroke="red"`); n != 2 {
		t.Errorf("highlighted roads = %d, want 2", n)
	}
	if !strings.Contains(svg, `stroke="blue"`) {
		t.Error("debug box missing")
	}
	for _, r := range s.graph.Roads() {
		if r.Highlighted {
			t.Errorf("road %s still highlighted after render", r.ID)
		}
	}
}

func TestTiles(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "tile:%s", r.URL.Path)
	}))
	t.Cleanup(upstream.Close)
	tmpl, err := tiles.NewTemplate(tiles.TemplateConfig{URL: upstream.URL + "/${z}/${x}/${y}.png"})
	if err != nil {
		t.Fatal(err)
	}

	s, _ := newTestServer(t, Options{Fetcher: tiles.NewFetcher(tmpl, tiles.FetcherOptions{})})
	h := s.Router()

	rec := get(t, h, "/tiles/3/2/1")
	if rec.Code != http.StatusOK || rec.Body.String() != "tile:/3/2/1.png" {
		t.Errorf("tile = %d %q", rec.Code, rec.Body)
	}
	if rec := get(t, h, "/tiles/3/99/1"); rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range tile status = %d, want 400", rec.Code)
	}
	if rec := get(t, h, "/tiles/a/1/1"); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric tile status = %d, want 400", rec.Code)
	}

	plain, _ := newTestServer(t, Options{})
	if rec := get(t, plain.Router(), "/tiles/1/0/0"); rec.Code != http.StatusNotFound {
		t.Errorf("tiles disabled status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	s, _ := newTestServer(t, Options{Metrics: m})
	h := s.Router()

	get(t, h, "/healthz")
	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `trailblazer_http_requests_total{method="GET",path="/healthz",status="200"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", rec.Body)
	}

	plain, _ := newTestServer(t, Options{})
	if rec := get(t, plain.Router(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("metrics disabled status = %d, want 404", rec.Code)
	}
}

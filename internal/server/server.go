// Package server exposes a road network over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/geo"
	netio "github.com/matzehuels/trailblazer/pkg/io"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/metrics"
	"github.com/matzehuels/trailblazer/pkg/projection"
	"github.com/matzehuels/trailblazer/pkg/render"
	"github.com/matzehuels/trailblazer/pkg/route"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

const requestTimeout = 30 * time.Second

// Options configures a [Server].
type Options struct {
	Graph         *geo.Graph
	Logger        *log.Logger
	Fetcher       *tiles.Fetcher   // nil disables /tiles
	Metrics       *metrics.Metrics // nil disables /metrics
	Width, Height int
	MinPixelWidth float64
}

// Server handles the HTTP API for one graph.
type Server struct {
	graph   *geo.Graph
	index   *geo.SpatialIndex
	log     *log.Logger
	fetcher *tiles.Fetcher
	metrics *metrics.Metrics

	width, height int
	minPixelWidth float64

	// renderMu serializes renders, which reproject intersections and set
	// road highlights.
	renderMu sync.Mutex
}

// New creates a server. Zero panel dimensions take the mapview defaults.
func New(opts Options) *Server {
	s := &Server{
		graph:         opts.Graph,
		index:         geo.NewSpatialIndex(opts.Graph),
		log:           opts.Logger,
		fetcher:       opts.Fetcher,
		metrics:       opts.Metrics,
		width:         opts.Width,
		height:        opts.Height,
		minPixelWidth: opts.MinPixelWidth,
	}
	if s.log == nil {
		s.log = log.Default()
	}
	if s.width <= 0 || s.height <= 0 {
		s.width, s.height = mapview.DefaultPanelWidth, mapview.DefaultPanelHeight
	}
	if s.minPixelWidth <= 0 {
		s.minPixelWidth = mapview.DefaultMinPixelWidth
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/network", s.handleNetwork)
	r.Get("/route", s.handleRoute)
	r.Get("/render.svg", s.handleRender)
	r.Get("/tiles/{z}/{x}/{y}", s.handleTile)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	return r
}

// Run serves h on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errs.Wrap(errs.ErrCodeNetwork, err, "listen %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// requestID propagates the caller's request id or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		d := time.Since(start)
		pattern := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = rc.RoutePattern()
		}
		s.metrics.ObserveHTTPRequest(r.Method, pattern, ww.Status(), d)
		s.log.Info("http_request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", d.Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), map[string]any{
		"error": map[string]any{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}

func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidArguments, errs.ErrCodeInvalidFormat, errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":            true,
		"intersections": s.graph.IntersectionCount(),
		"roads":         s.graph.RoadCount(),
	})
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, netio.FromGraph(s.graph))
}

// routeResponse is the body of GET /route.
type routeResponse struct {
	ID    string   `json:"id"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Found bool     `json:"found"`
	Stops []string `json:"stops"`
	Roads []string `json:"roads"`
	Miles float64  `json:"miles"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.endpoints(r)
	if err != nil {
		writeError(w, err)
		return
	}
	path, err := route.Find(r.Context(), s.graph, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	start, _ := s.graph.Intersection(from)
	resp := routeResponse{
		ID:    uuid.NewString(),
		From:  from,
		To:    to,
		Found: len(path) > 0 || from == to,
		Stops: []string{},
		Roads: make([]string, len(path)),
		Miles: route.TotalDistance(path),
	}
	for _, in := range route.Stops(start, path) {
		resp.Stops = append(resp.Stops, in.ID)
	}
	for i, road := range path {
		resp.Roads[i] = road.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// endpoints reads from/to ids, or resolves from_lat/from_lon and
// to_lat/to_lon to the nearest intersections.
func (s *Server) endpoints(r *http.Request) (string, string, error) {
	from, err := s.endpoint(r, "from")
	if err != nil {
		return "", "", err
	}
	to, err := s.endpoint(r, "to")
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func (s *Server) endpoint(r *http.Request, name string) (string, error) {
	q := r.URL.Query()
	if id := q.Get(name); id != "" {
		return id, nil
	}
	latStr, lonStr := q.Get(name+"_lat"), q.Get(name+"_lon")
	if latStr == "" || lonStr == "" {
		return "", errs.New(errs.ErrCodeInvalidArguments, "missing %s or %s_lat and %s_lon", name, name, name)
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lon, err2 := strconv.ParseFloat(lonStr, 64)
	if err1 != nil || err2 != nil {
		return "", errs.New(errs.ErrCodeInvalidArguments, "invalid %s coordinates %q, %q", name, latStr, lonStr)
	}
	in, ok := s.index.Nearest(lat, lon)
	if !ok {
		return "", errs.New(errs.ErrCodeNotFound, "no intersection near %v, %v", lat, lon)
	}
	return in.ID, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := render.Options{
		Debug:  q.Get("debug") == "1" || q.Get("debug") == "true",
		Labels: q.Get("labels") == "1" || q.Get("labels") == "true",
	}

	var from, to string
	if q.Get("from") != "" || q.Get("from_lat") != "" {
		var err error
		if from, to, err = s.endpoints(r); err != nil {
			writeError(w, err)
			return
		}
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	v := mapview.New(s.graph, projection.NewWebMercator(float64(s.width), float64(s.height), 0))
	v.ResetView(s.minPixelWidth)

	s.graph.ClearHighlights()
	defer s.graph.ClearHighlights()
	if from != "" {
		path, err := route.Find(r.Context(), s.graph, from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		for _, road := range path {
			road.Highlighted = true
		}
	}

	if s.fetcher != nil && q.Get("tiles") != "" {
		imgs, err := render.TileImages(r.Context(), v, s.fetcher)
		if err != nil {
			s.log.Warn("tiles unavailable", "err", err)
		}
		opts.Images = imgs
	}

	data, err := render.Render(r.Context(), v, render.FormatSVG, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		writeError(w, errs.New(errs.ErrCodeNotFound, "tiles are not configured"))
		return
	}
	var t tiles.Tile
	for _, p := range []struct {
		name string
		dst  *int
	}{{"z", &t.Z}, {"x", &t.X}, {"y", &t.Y}} {
		n, err := strconv.Atoi(chi.URLParam(r, p.name))
		if err != nil {
			writeError(w, errs.New(errs.ErrCodeInvalidArguments, "tile %s must be an integer", p.name))
			return
		}
		*p.dst = n
	}

	data, err := s.fetcher.Fetch(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

package tiles

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/trailblazer/pkg/cache"
	errs "github.com/matzehuels/trailblazer/pkg/errors"
)

func tileServer(t *testing.T, failFirst int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "png:%s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testTemplate(t *testing.T, srv *httptest.Server) Template {
	t.Helper()
	tmpl, err := NewTemplate(TemplateConfig{URL: srv.URL + "/${z}/${x}/${y}.png"})
	if err != nil {
		t.Fatal(err)
	}
	return tmpl
}

func TestFetcherLayers(t *testing.T) {
	ctx := context.Background()
	srv, calls := tileServer(t, 0)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	f := NewFetcher(testTemplate(t, srv), FetcherOptions{Provider: "test", Cache: fc})
	tile := Tile{Z: 3, X: 2, Y: 5}
	data, err := f.Fetch(ctx, tile)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "png:/3/2/5.png" {
		t.Errorf("data = %q", data)
	}
	if _, err := f.Fetch(ctx, tile); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1 (manager hit)", calls.Load())
	}
	if f.Manager().Count(3) != 1 {
		t.Errorf("manager count = %d, want 1", f.Manager().Count(3))
	}

	// A fresh fetcher sharing the cache does not hit the network.
	f2 := NewFetcher(testTemplate(t, srv), FetcherOptions{Provider: "test", Cache: fc})
	if _, err := f2.Fetch(ctx, tile); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1 (cache hit)", calls.Load())
	}
}

func TestFetcherRetries(t *testing.T) {
	srv, calls := tileServer(t, 2)
	f := NewFetcher(testTemplate(t, srv), FetcherOptions{RetryDelay: time.Millisecond})
	if _, err := f.Fetch(context.Background(), Tile{Z: 1}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server calls = %d, want 3", calls.Load())
	}
}

func TestFetcherRejectsInvalidTile(t *testing.T) {
	srv, calls := tileServer(t, 0)
	f := NewFetcher(testTemplate(t, srv), FetcherOptions{})
	_, err := f.Fetch(context.Background(), Tile{Z: 1, X: 2})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if calls.Load() != 0 {
		t.Error("invalid tile should not be requested")
	}
}

func TestFetchAll(t *testing.T) {
	srv, _ := tileServer(t, 0)
	f := NewFetcher(testTemplate(t, srv), FetcherOptions{Concurrency: 2})
	ts := []Tile{{1, 0, 0}, {1, 1, 0}, {1, 0, 1}, {1, 1, 1}}
	got, err := f.FetchAll(context.Background(), ts)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 4 || string(got[Tile{1, 1, 0}]) != "png:/1/1/0.png" {
		t.Errorf("FetchAll = %v", got)
	}
}

package render

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/trailblazer/pkg/tiles"
)

func TestTileImages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, "tile:%s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	tmpl, err := tiles.NewTemplate(tiles.TemplateConfig{URL: srv.URL + "/${z}/${x}/${y}.png"})
	if err != nil {
		t.Fatal(err)
	}
	f := tiles.NewFetcher(tmpl, tiles.FetcherOptions{})

	v := testView(t)
	imgs, err := TileImages(context.Background(), v, f)
	if err != nil {
		t.Fatalf("TileImages: %v", err)
	}
	if len(imgs) == 0 || len(imgs) > maxTiles {
		t.Fatalf("len(images) = %d, want 1..%d", len(imgs), maxTiles)
	}
	if int(calls.Load()) != len(imgs) {
		t.Errorf("server calls = %d, want one per image (%d)", calls.Load(), len(imgs))
	}
	for _, img := range imgs {
		if !strings.HasPrefix(string(img.Data), "tile:/") {
			t.Errorf("image data = %q", img.Data)
		}
		if img.Rect.W <= 0 || img.Rect.H <= 0 {
			t.Errorf("image rect = %+v", img.Rect)
		}
	}

	svg := string(RenderSVG(v, WithImages(imgs...)))
	if n := strings.Count(svg, "<image "); n != len(imgs) {
		t.Errorf("svg images = %d, want %d", n, len(imgs))
	}
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopRouteHooks{}.OnRouteComplete(ctx, 3, 1.5, time.Millisecond, nil)
	NoopRenderHooks{}.OnRenderComplete(ctx, "svg", 10, time.Millisecond, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "tile")
	c.OnCacheMiss(ctx, "tile")
	c.OnCacheSet(ctx, "render", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "tile.openstreetmap.org")
	h.OnResponse(ctx, "tile.openstreetmap.org", 200, time.Second)
	h.OnError(ctx, "tile.openstreetmap.org", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Route().(NoopRouteHooks); !ok {
		t.Error("Route() should return NoopRouteHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	r := &recordingHooks{}
	SetRouteHooks(r)
	SetCacheHooks(r)
	if Route() != RouteHooks(r) || Cache() != CacheHooks(r) {
		t.Fatal("Set* should install custom hooks")
	}

	Route().OnRouteComplete(context.Background(), 2, 0.5, time.Millisecond, nil)
	Cache().OnCacheHit(context.Background(), "tile")
	if r.routes != 1 || r.hits != 1 {
		t.Errorf("recorded routes=%d hits=%d, want 1/1", r.routes, r.hits)
	}

	SetRouteHooks(nil)
	if Route() != RouteHooks(r) {
		t.Error("SetRouteHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Route().(NoopRouteHooks); !ok {
		t.Error("Reset should restore NoopRouteHooks")
	}
}

type recordingHooks struct {
	NoopCacheHooks
	routes, hits int
}

func (r *recordingHooks) OnRouteComplete(context.Context, int, float64, time.Duration, error) {
	r.routes++
}

func (r *recordingHooks) OnCacheHit(context.Context, string) { r.hits++ }

package tiles

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/trailblazer/pkg/cache"
	"github.com/matzehuels/trailblazer/pkg/httputil"
	"github.com/matzehuels/trailblazer/pkg/observability"
)

// Defaults for [FetcherOptions].
const (
	DefaultTTL         = 7 * 24 * time.Hour
	DefaultAttempts    = 3
	DefaultRetryDelay  = 500 * time.Millisecond
	DefaultConcurrency = 4
)

// cacheKeyType labels tile entries in cache hooks.
const cacheKeyType = "tile"

// FetcherOptions configures a [Fetcher]. Zero fields take the defaults.
type FetcherOptions struct {
	Provider    string // cache key namespace, e.g. "openstreetmap"
	Cache       cache.Cache
	Keyer       cache.Keyer
	Client      *httputil.Client
	Manager     *Manager
	TTL         time.Duration
	Attempts    int
	RetryDelay  time.Duration
	Concurrency int
}

// Fetcher downloads tiles, consulting the manager, then the cache, then
// the network.
type Fetcher struct {
	template Template
	opts     FetcherOptions
}

// NewFetcher creates a fetcher for the given template.
func NewFetcher(t Template, opts FetcherOptions) *Fetcher {
	if opts.Provider == "" {
		opts.Provider = "custom"
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Client == nil {
		opts.Client = httputil.NewClient(nil)
	}
	if opts.Manager == nil {
		opts.Manager = NewManager(DefaultLevels)
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Fetcher{template: t, opts: opts}
}

// Manager returns the fetcher's tile index.
func (f *Fetcher) Manager() *Manager { return f.opts.Manager }

// Template returns the fetcher's URL template.
func (f *Fetcher) Template() Template { return f.template }

// Fetch returns the image of t.
func (f *Fetcher) Fetch(ctx context.Context, t Tile) ([]byte, error) {
	if err := t.Validate(f.opts.Manager.Levels()); err != nil {
		return nil, err
	}
	if data, ok := f.opts.Manager.Get(t); ok {
		return data, nil
	}

	key := f.opts.Keyer.TileKey(f.opts.Provider, t.Z, t.X, t.Y)
	hooks := observability.Cache()
	if data, ok, err := f.opts.Cache.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, cacheKeyType)
		f.opts.Manager.Put(t, data)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	data, err := f.download(ctx, f.template.URL(t.X, t.Y, t.Z))
	if err != nil {
		return nil, err
	}
	if err := f.opts.Cache.Set(ctx, key, data, f.opts.TTL); err == nil {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	f.opts.Manager.Put(t, data)
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	hooks := observability.HTTP()

	var data []byte
	err := httputil.Retry(ctx, f.opts.Attempts, f.opts.RetryDelay, func() error {
		hooks.OnRequest(ctx, host)
		start := time.Now()
		var err error
		data, err = f.opts.Client.Get(ctx, rawURL)
		if err != nil {
			hooks.OnError(ctx, host, err)
			return err
		}
		hooks.OnResponse(ctx, host, 200, time.Since(start))
		return nil
	})
	return data, err
}

// FetchAll downloads every tile with bounded concurrency. It returns the
// images keyed by tile, or the first error.
func (f *Fetcher) FetchAll(ctx context.Context, ts []Tile) (map[Tile][]byte, error) {
	results := make([][]byte, len(ts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Concurrency)
	for i, t := range ts {
		g.Go(func() error {
			data, err := f.Fetch(ctx, t)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Tile][]byte, len(ts))
	for i, t := range ts {
		out[t] = results[i]
	}
	return out, nil
}

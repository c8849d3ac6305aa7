// Package tiles locates, names and downloads slippy-map background tiles.
//
// A [Template] turns tile coordinates into a provider URL. Templates use the
// placeholders ${x}, ${y} and ${z} for the tile, ${s} for a subdomain and
// ${k} for an API key; a template that uses ${s} or ${k} cannot be built
// without the corresponding value.
//
//	t, err := tiles.NewTemplate(tiles.Providers["openstreetmap"])
//	url := t.URL(1130, 1512, 12)
//
// [Cover] lists the tiles, and their placement in projected coordinates,
// needed to fill a region of a [projection.Projection]. A [Fetcher] downloads
// tiles through a [cache.Cache] and keeps them in a per-zoom [Manager].
package tiles

package render

import (
	"context"
	"net/http"

	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

// maxTiles bounds the background tiles fetched for one render. Views that
// would need more drop to coarser zoom levels.
const maxTiles = 64

// TileImages fetches the tiles covering the visible part of v as
// background images for [WithImages].
func TileImages(ctx context.Context, v *mapview.View, f *tiles.Fetcher) ([]Image, error) {
	p := v.Projection()
	visible := v.VisibleRect()

	z := tiles.ZoomFor(p, f.Manager().Levels())
	cover := tiles.Cover(p, visible, z)
	for len(cover) > maxTiles && z > 0 {
		z--
		cover = tiles.Cover(p, visible, z)
	}

	ts := make([]tiles.Tile, len(cover))
	for i, c := range cover {
		ts[i] = c.Tile
	}
	data, err := f.FetchAll(ctx, ts)
	if err != nil {
		return nil, err
	}

	imgs := make([]Image, 0, len(cover))
	for _, c := range cover {
		b := data[c.Tile]
		imgs = append(imgs, Image{Rect: c.Rect, MIME: http.DetectContentType(b), Data: b})
	}
	return imgs, nil
}

package tiles

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/projection"
	"github.com/matzehuels/trailblazer/pkg/viewport"
)

// Size is the edge length of a tile image in pixels.
const Size = 256

// Tile addresses one slippy-map tile.
type Tile struct {
	Z, X, Y int
}

func (t Tile) String() string { return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y) }

// Validate checks that the tile exists at its zoom level and that the
// level is below levels.
func (t Tile) Validate(levels int) error {
	if t.Z < 0 || t.Z >= levels {
		return errs.New(errs.ErrCodeInvalidInput, "tile %s: zoom must be in [0, %d)", t, levels)
	}
	n := 1 << t.Z
	if t.X < 0 || t.X >= n || t.Y < 0 || t.Y >= n {
		return errs.New(errs.ErrCodeInvalidInput, "tile %s: x and y must be in [0, %d)", t, n)
	}
	return nil
}

// At returns the tile containing (lat, lon) at zoom z. Latitudes beyond
// the Mercator limit are clamped to the edge rows.
func At(lat, lon float64, z int) Tile {
	lat = max(-projection.MaxLatitude, min(projection.MaxLatitude, lat))
	n := math.Exp2(float64(z))
	phi := lat * math.Pi / 180
	x := int(math.Floor((lon + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(phi)+1/math.Cos(phi))/math.Pi) / 2 * n))
	last := int(n) - 1
	return Tile{Z: z, X: max(0, min(last, x)), Y: max(0, min(last, y))}
}

// NorthWest returns the latitude and longitude of the tile's top-left corner.
func (t Tile) NorthWest() (lat, lon float64) {
	n := math.Exp2(float64(t.Z))
	lon = float64(t.X)/n*360 - 180
	lat = math.Atan(math.Sinh(math.Pi*(1-2*float64(t.Y)/n))) * 180 / math.Pi
	return lat, lon
}

// Placement is a tile and where it lands in projected coordinates.
type Placement struct {
	Tile Tile
	Rect viewport.Rect
}

// ZoomFor picks the integer tile zoom whose tiles come closest to Size
// projected pixels wide under p, limited to [0, levels).
func ZoomFor(p projection.Projection, levels int) int {
	z := int(math.Round(p.ZoomLevel() + math.Log2(p.Width()/Size)))
	return max(0, min(levels-1, z))
}

// Cover returns the tiles at zoom z that intersect the projected region r,
// in row-major order. Each placement's rect is the tile's extent under p.
func Cover(p projection.Projection, r viewport.Rect, z int) []Placement {
	n := math.Exp2(float64(z))
	scale := math.Exp2(p.ZoomLevel())
	tileW := p.Width() * scale / n
	tileH := p.Height() * scale / n
	if tileW <= 0 || tileH <= 0 {
		return nil
	}

	last := int(n) - 1
	x0 := max(0, int(math.Floor(r.X/tileW)))
	x1 := min(last, int(math.Floor((r.X+r.W)/tileW)))
	y0 := max(0, int(math.Floor(r.Y/tileH)))
	y1 := min(last, int(math.Floor((r.Y+r.H)/tileH)))

	var out []Placement
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, Placement{
				Tile: Tile{Z: z, X: x, Y: y},
				Rect: viewport.Rect{X: float64(x) * tileW, Y: float64(y) * tileH, W: tileW, H: tileH},
			})
		}
	}
	return out
}

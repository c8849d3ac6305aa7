package render

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/observability"
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz" // neato-rendered SVG
)

// Formats lists the formats [Render] accepts.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatGraphviz}

// Options configures [Render].
type Options struct {
	Debug  bool
	Labels bool
	Scale  float64 // PNG scale, 2 when zero
	Images []Image
}

func (o Options) svgOptions() []SVGOption {
	opts := []SVGOption{WithImages(o.Images...)}
	if o.Debug {
		opts = append(opts, WithDebug())
	}
	if o.Labels {
		opts = append(opts, WithLabels())
	}
	return opts
}

// Render produces the view in the given format and reports the render to
// the observability hooks.
func Render(ctx context.Context, v *mapview.View, format string, opts Options) ([]byte, error) {
	start := time.Now()
	data, err := render(ctx, v, format, opts)
	observability.Render().OnRenderComplete(ctx, format, v.Graph().RoadCount(), time.Since(start), err)
	return data, err
}

func render(ctx context.Context, v *mapview.View, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(v, opts.svgOptions()...), nil
	case FormatPNG:
		scale := opts.Scale
		if scale <= 0 {
			scale = 2
		}
		return ToPNG(RenderSVG(v, opts.svgOptions()...), scale)
	case FormatPDF:
		return ToPDF(RenderSVG(v, opts.svgOptions()...))
	case FormatDOT:
		return []byte(ToDOT(v, DOTOptions{Labels: opts.Labels})), nil
	case FormatGraphviz:
		return RenderDOT(ctx, ToDOT(v, DOTOptions{Labels: opts.Labels}))
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// FormatFromPath infers the format from a file extension, defaulting
// to SVG.
func FormatFromPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatPNG:
		return FormatPNG
	case FormatPDF:
		return FormatPDF
	case FormatDOT, "gv":
		return FormatDOT
	default:
		return FormatSVG
	}
}

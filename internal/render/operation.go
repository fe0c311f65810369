package render

import (
	"fmt"
	"image"

	"github.com/example/markup/internal/markup"
)

// Operation paints op onto dst with every point scaled by (sx, sy). Stroke
// widths and mosaic cells scale by the mean of the two factors. A mosaic
// samples whatever dst already holds, so callers replay operations in log
// order.
func Operation(dst *image.RGBA, op markup.Operation, sx, sy float64) {
	f := (sx + sy) / 2
	switch o := op.(type) {
	case *markup.PencilOp:
		Polyline(dst, scalePoints(o.Path, sx, sy), scaleStroke(o.Stroke, f))
	case *markup.MarkerpenOp:
		Polyline(dst, scalePoints([]markup.Point{o.From, o.To}, sx, sy), scaleStroke(o.Stroke, f))
	case *markup.PolylineOp:
		Polyline(dst, scalePoints(o.Vertices, sx, sy), scaleStroke(o.Stroke, f))
	case *markup.RectOp:
		Outline(dst, o.Box().Scale(sx, sy), scaleStroke(o.Stroke, f))
	case *markup.MosaicOp:
		Pixelate(dst, o.Box().Scale(sx, sy).Image(), o.Block*f)
	default:
		panic(fmt.Sprintf("render: unhandled operation %T", op))
	}
}

// Operations replays ops in order.
func Operations(dst *image.RGBA, ops []markup.Operation, sx, sy float64) {
	for _, op := range ops {
		Operation(dst, op, sx, sy)
	}
}

func scalePoints(pts []markup.Point, sx, sy float64) []markup.Point {
	out := make([]markup.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Scale(sx, sy)
	}
	return out
}

func scaleStroke(s markup.Stroke, f float64) markup.Stroke {
	s.Width *= f
	return s
}
